package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/email"
	"github.com/valubaby/valu-store/internal/types"
)

type fakeMailer struct {
	mu        sync.Mutex
	customers []string
	admins    []string
	err       error
	block     chan struct{}
	deadlines []bool
}

func (f *fakeMailer) record(ctx context.Context, list *[]string, data *email.OrderData) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	f.deadlines = append(f.deadlines, hasDeadline)
	if f.err != nil {
		return f.err
	}
	*list = append(*list, data.OrderNumber)
	return nil
}

func (f *fakeMailer) SendOrderConfirmation(ctx context.Context, data *email.OrderData) error {
	return f.record(ctx, &f.customers, data)
}

func (f *fakeMailer) SendOrderNotificationToAdmin(ctx context.Context, data *email.OrderData) error {
	return f.record(ctx, &f.admins, data)
}

func sampleOrder(number string) *checkout.Order {
	notes := "Envolver para regalo"
	return &checkout.Order{
		ID:            "01HZX",
		OrderNumber:   number,
		CustomerName:  "María Quispe",
		CustomerEmail: "maria@example.com",
		CustomerPhone: "987654321",
		ShippingAddress: types.Address{
			Region: "Lima", Province: "Lima", District: "Miraflores", Street: "Av. Larco 123",
		},
		Items: []checkout.OrderItem{{
			ProductID: "dress",
			Quantity:  2,
			Size:      "3-6M",
			Price:     decimal.NewFromInt(189),
			Product:   checkout.ProductSnapshot{ID: "dress", Name: "Rosé Tulle Dress"},
		}},
		Subtotal:      decimal.NewFromInt(378),
		Shipping:      decimal.NewFromInt(15),
		Total:         decimal.NewFromInt(393),
		PaymentMethod: checkout.PaymentTransfer,
		Notes:         &notes,
		CreatedAt:     time.Date(2024, 6, 10, 15, 4, 0, 0, time.UTC),
	}
}

func TestNotificationDispatcher_DeliversBothMessages(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewNotificationDispatcher(mailer, DispatcherConfig{QueueSize: 8, Workers: 2})
	d.Start(context.Background())

	d.OrderCreated(sampleOrder("VB-000001-001"))
	d.OrderCreated(sampleOrder("VB-000002-002"))
	d.Stop()

	assert.ElementsMatch(t, []string{"VB-000001-001", "VB-000002-002"}, mailer.customers)
	assert.ElementsMatch(t, []string{"VB-000001-001", "VB-000002-002"}, mailer.admins)

	stats := d.Stats()
	assert.Equal(t, int64(4), stats.Sent)
	assert.Zero(t, stats.Dropped)
	assert.Zero(t, stats.Pending)

	for _, hasDeadline := range mailer.deadlines {
		assert.True(t, hasDeadline, "every send is bounded by a timeout")
	}
}

func TestNotificationDispatcher_EnqueueNeverBlocks(t *testing.T) {
	mailer := &fakeMailer{block: make(chan struct{})}
	d := NewNotificationDispatcher(mailer, DispatcherConfig{QueueSize: 1, Workers: 1})
	d.Start(context.Background())

	n := Notification{Kind: CustomerConfirmation, OrderNumber: "VB-000001-001", Data: OrderEmailData(sampleOrder("VB-000001-001"))}

	// The worker takes the first message and blocks; the second fills the
	// queue; the rest are dropped.
	require.True(t, d.Enqueue(n))
	require.Eventually(t, func() bool { return d.Stats().Pending == 0 }, time.Second, time.Millisecond)
	require.True(t, d.Enqueue(n))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 5 {
			d.Enqueue(n)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	assert.Equal(t, int64(5), d.Stats().Dropped)

	close(mailer.block)
	d.Stop()
	assert.Equal(t, int64(2), d.Stats().Sent)
}

func TestNotificationDispatcher_NotConfiguredIsSkipped(t *testing.T) {
	mailer := &fakeMailer{err: email.ErrNotConfigured}
	d := NewNotificationDispatcher(mailer, DispatcherConfig{})
	d.Start(context.Background())

	d.OrderCreated(sampleOrder("VB-000001-001"))
	d.Stop()

	stats := d.Stats()
	assert.Equal(t, int64(2), stats.Skipped)
	assert.Zero(t, stats.Failed)
}

func TestNotificationDispatcher_FailuresAreCountedNotRetried(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp: 421 service not available")}
	d := NewNotificationDispatcher(mailer, DispatcherConfig{Workers: 1})
	d.Start(context.Background())

	d.OrderCreated(sampleOrder("VB-000001-001"))
	d.Stop()

	assert.Equal(t, int64(2), d.Stats().Failed)
	assert.Len(t, mailer.deadlines, 2, "each notification is attempted once")
}

func TestNotificationDispatcher_DrainsAfterContextCancel(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewNotificationDispatcher(mailer, DispatcherConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	d.OrderCreated(sampleOrder("VB-000001-001"))
	cancel()
	d.Stop()

	assert.Equal(t, []string{"VB-000001-001"}, mailer.customers)
}

func TestNotificationDispatcher_EnqueueAfterStopDrops(t *testing.T) {
	d := NewNotificationDispatcher(&fakeMailer{}, DispatcherConfig{})
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	assert.False(t, d.Enqueue(Notification{Kind: AdminAlert}))
	assert.Equal(t, int64(1), d.Stats().Dropped)
}

func TestOrderEmailData(t *testing.T) {
	data := OrderEmailData(sampleOrder("VB-123456-042"))

	assert.Equal(t, "VB-123456-042", data.OrderNumber)
	assert.Equal(t, "Transferencia bancaria", data.PaymentMethod)
	assert.Equal(t, "10/06/2024 15:04", data.OrderDate)
	assert.Equal(t, "Envolver para regalo", data.Notes)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "Rosé Tulle Dress", data.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(378).Equal(data.Items[0].Total))
}
