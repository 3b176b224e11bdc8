package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/email"
	"github.com/valubaby/valu-store/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultQueueSize   = 64
	DefaultWorkers     = 2
	DefaultSendTimeout = 30 * time.Second
)

type NotificationKind string

const (
	CustomerConfirmation NotificationKind = "customer_confirmation"
	AdminAlert           NotificationKind = "admin_alert"
)

// Mailer delivers order emails. *email.Service satisfies it.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, data *email.OrderData) error
	SendOrderNotificationToAdmin(ctx context.Context, data *email.OrderData) error
}

type Notification struct {
	Kind        NotificationKind
	OrderNumber string
	Data        *email.OrderData
}

type DispatcherConfig struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// NotificationDispatcher sends order emails off the request path through a
// bounded queue drained by a fixed pool of workers. Failures are logged and
// never retried.
type NotificationDispatcher struct {
	mailer      Mailer
	queue       chan Notification
	workers     int
	sendTimeout time.Duration

	mu      sync.RWMutex
	started bool
	stopped bool
	group   *errgroup.Group

	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
	skipped atomic.Int64
}

func NewNotificationDispatcher(mailer Mailer, cfg DispatcherConfig) *NotificationDispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	return &NotificationDispatcher{
		mailer:      mailer,
		queue:       make(chan Notification, cfg.QueueSize),
		workers:     cfg.Workers,
		sendTimeout: cfg.SendTimeout,
	}
}

// Start launches the workers. Sends keep ctx's values but not its
// cancellation, so Stop can drain the queue after shutdown begins.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true

	slog.Info("starting notification dispatcher", "workers", d.workers, "queue_size", cap(d.queue))

	base := context.WithoutCancel(ctx)
	d.group = &errgroup.Group{}
	for range d.workers {
		d.group.Go(func() error {
			for n := range d.queue {
				d.deliver(base, n)
			}
			return nil
		})
	}
}

// Stop closes the queue and waits for queued notifications to be delivered.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	group := d.group
	d.mu.Unlock()

	if group != nil {
		_ = group.Wait()
	}
	slog.Info("notification dispatcher stopped",
		"sent", d.sent.Load(),
		"failed", d.failed.Load(),
		"dropped", d.dropped.Load())
}

// Enqueue never blocks. It reports false when the notification was dropped
// because the queue is full or the dispatcher is stopped.
func (d *NotificationDispatcher) Enqueue(n Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.dropped.Add(1)
		slog.Warn("notification dropped: dispatcher stopped", "kind", n.Kind, "order_number", n.OrderNumber)
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		d.dropped.Add(1)
		slog.Warn("notification dropped: queue full", "kind", n.Kind, "order_number", n.OrderNumber)
		return false
	}
}

// OrderCreated queues the customer confirmation and the admin alert.
func (d *NotificationDispatcher) OrderCreated(order *checkout.Order) {
	data := OrderEmailData(order)
	d.Enqueue(Notification{Kind: CustomerConfirmation, OrderNumber: order.OrderNumber, Data: data})
	d.Enqueue(Notification{Kind: AdminAlert, OrderNumber: order.OrderNumber, Data: data})
}

func (d *NotificationDispatcher) Stats() types.QueueStats {
	return types.QueueStats{
		Pending: len(d.queue),
		Sent:    d.sent.Load(),
		Failed:  d.failed.Load(),
		Dropped: d.dropped.Load(),
		Skipped: d.skipped.Load(),
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	var err error
	switch n.Kind {
	case CustomerConfirmation:
		err = d.mailer.SendOrderConfirmation(ctx, n.Data)
	case AdminAlert:
		err = d.mailer.SendOrderNotificationToAdmin(ctx, n.Data)
	default:
		slog.Error("unknown notification kind", "kind", n.Kind)
		d.failed.Add(1)
		return
	}

	switch {
	case errors.Is(err, email.ErrNotConfigured):
		d.skipped.Add(1)
		slog.Warn("email not configured, skipping notification", "kind", n.Kind, "order_number", n.OrderNumber)
	case err != nil:
		d.failed.Add(1)
		slog.Error("failed to send notification", "error", err, "kind", n.Kind, "order_number", n.OrderNumber)
	default:
		d.sent.Add(1)
	}
}

// OrderEmailData flattens an order into the email template model.
func OrderEmailData(order *checkout.Order) *email.OrderData {
	data := &email.OrderData{
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		OrderDate:       order.CreatedAt.Format("02/01/2006 15:04"),
		Subtotal:        order.Subtotal,
		Shipping:        order.Shipping,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod.Label(),
	}
	if order.Notes != nil {
		data.Notes = *order.Notes
	}

	for _, item := range order.Items {
		data.Items = append(data.Items, email.OrderItem{
			ProductName: item.Product.Name,
			Size:        item.Size,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Price.Mul(decimal.NewFromInt(item.Quantity)),
		})
	}
	return data
}
