package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/internal/types"
	"github.com/valubaby/valu-store/storage"
	"github.com/valubaby/valu-store/storage/db"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusPaid      = "PAID"
	StatusShipped   = "SHIPPED"

	DefaultListLimit = 50
	MaxListLimit     = 200

	orderNotFound = "Order not found"

	orderNumberAttempts = 3
)

type PaymentMethod string

const (
	PaymentYape     PaymentMethod = "yape"
	PaymentPlin     PaymentMethod = "plin"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCOD      PaymentMethod = "cod"
)

// Label is the customer-facing name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentYape:
		return "Yape"
	case PaymentPlin:
		return "Plin"
	case PaymentTransfer:
		return "Transferencia bancaria"
	case PaymentCOD:
		return "Contra entrega"
	default:
		return string(m)
	}
}

// ParsePaymentMethod normalizes a submitted method. Empty means yape, the
// storefront's preselected option.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return PaymentYape, nil
	case PaymentYape, PaymentPlin, PaymentTransfer, PaymentCOD:
		return m, nil
	default:
		return "", apperr.Validation("Unsupported payment method: %s", s)
	}
}

type OrderItemInput struct {
	ProductID string          `json:"productId"`
	ID        string          `json:"id,omitempty"`
	Quantity  int64           `json:"quantity"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderInput struct {
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   string           `json:"customerPhone"`
	CustomerDNI     string           `json:"customerDNI"`
	ShippingAddress *types.Address   `json:"shippingAddress"`
	Items           []OrderItemInput `json:"items"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	Shipping        decimal.Decimal  `json:"shipping"`
	Total           decimal.Decimal  `json:"total"`
	PaymentMethod   string           `json:"paymentMethod"`
	Notes           string           `json:"notes"`
}

// ProductSnapshot is the product as it is now, attached to an order item for
// display. The item's own Price is what the customer was charged.
type ProductSnapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Images   []string        `json:"images"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Product   ProductSnapshot `json:"product"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerDNI     *string         `json:"customerDNI"`
	ShippingAddress types.Address   `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentID       *string         `json:"paymentId"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type ListOrdersParams struct {
	Status string
	Limit  int
}

type OrderStats struct {
	PendingOrders   int64           `json:"pendingOrders"`
	ConfirmedOrders int64           `json:"confirmedOrders"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// Notifier receives committed orders. Implementations must not block.
type Notifier interface {
	OrderCreated(order *Order)
}

type OrderService struct {
	storage  *storage.Storage
	notifier Notifier
	now      func() time.Time
	intN     func(int) int
}

// NewOrderService creates the order workflow. notifier may be nil.
func NewOrderService(s *storage.Storage, notifier Notifier) *OrderService {
	return &OrderService{
		storage:  s,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		intN:     rand.IntN,
	}
}

// Create persists the order and its items in one transaction, then hands the
// committed order to the notifier. Prices and totals are stored as submitted.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	method, err := ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if !in.Total.Equal(in.Subtotal.Add(in.Shipping)) {
		slog.Warn("order total does not match subtotal plus shipping",
			"subtotal", in.Subtotal.String(),
			"shipping", in.Shipping.String(),
			"total", in.Total.String())
	}

	now := s.now()
	orderID := s.newID(now)

	// The number has only a thousand values per millisecond, so a collision
	// draws a fresh one instead of failing the checkout.
	for attempt := 1; ; attempt++ {
		err = s.insert(ctx, orderID, NewOrderNumber(now, s.intN), method, in, now)
		if err == nil || !errors.Is(err, apperr.ErrDuplicate) || attempt == orderNumberAttempts {
			break
		}
		slog.Warn("order number collision, retrying", "attempt", attempt)
	}
	if err != nil {
		return nil, err
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	slog.Info("order created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"items", len(order.Items),
		"total", order.Total.String(),
		"payment_method", order.PaymentMethod)

	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}

	return order, nil
}

func (s *OrderService) insert(ctx context.Context, orderID, number string, method PaymentMethod, in CreateOrderInput, now time.Time) error {
	err := s.storage.Tx(ctx, func(q *db.Queries) error {
		_, err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:              orderID,
			OrderNumber:     number,
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			CustomerDni:     optionalString(in.CustomerDNI),
			ShippingAddress: *in.ShippingAddress,
			Subtotal:        in.Subtotal,
			Shipping:        in.Shipping,
			Total:           in.Total,
			PaymentMethod:   string(method),
			Notes:           optionalString(in.Notes),
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i, item := range in.Items {
			_, err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				ID:        s.newID(now),
				OrderID:   orderID,
				ProductID: item.productID(),
				Quantity:  item.Quantity,
				Size:      item.Size,
				Price:     item.Price,
				Position:  int64(i),
			})
			if err != nil {
				return fmt.Errorf("failed to create order item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return storage.MapError(err, orderNotFound)
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*Order, error) {
	row, err := s.storage.Queries.GetOrder(ctx, id)
	if err != nil {
		return nil, storage.MapError(err, orderNotFound)
	}
	return s.withItems(ctx, row)
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*Order, error) {
	row, err := s.storage.Queries.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, storage.MapError(err, orderNotFound)
	}
	return s.withItems(ctx, row)
}

// List returns orders newest first with their items.
func (s *OrderService) List(ctx context.Context, params ListOrdersParams) ([]Order, error) {
	limit := int64(ClampLimit(params.Limit))

	var (
		rows []db.Order
		err  error
	)
	if params.Status != "" {
		rows, err = s.storage.Queries.ListOrdersByStatus(ctx, db.ListOrdersByStatusParams{
			Status: params.Status,
			Limit:  limit,
		})
	} else {
		rows, err = s.storage.Queries.ListOrders(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		order, err := s.withItems(ctx, row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// UpdateStatus stores any non-empty status. Transitions are not checked.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperr.Validation("Status is required")
	}

	row, err := s.storage.Queries.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		Status:    status,
		UpdatedAt: s.now(),
		ID:        id,
	})
	if err != nil {
		return nil, storage.MapError(err, orderNotFound)
	}

	slog.Info("order status updated", "order_id", id, "status", status)
	return s.withItems(ctx, row)
}

// UpdatePayment sets the payment status. An empty paymentID keeps the stored reference.
func (s *OrderService) UpdatePayment(ctx context.Context, id, paymentStatus, paymentID string) (*Order, error) {
	paymentStatus = strings.TrimSpace(paymentStatus)
	if paymentStatus == "" {
		return nil, apperr.Validation("Payment status is required")
	}

	row, err := s.storage.Queries.UpdateOrderPayment(ctx, db.UpdateOrderPaymentParams{
		PaymentStatus: paymentStatus,
		PaymentID:     optionalString(paymentID),
		UpdatedAt:     s.now(),
		ID:            id,
	})
	if err != nil {
		return nil, storage.MapError(err, orderNotFound)
	}

	slog.Info("order payment updated", "order_id", id, "payment_status", paymentStatus)
	return s.withItems(ctx, row)
}

// Stats summarizes the order book for the admin dashboard.
func (s *OrderService) Stats(ctx context.Context) (*OrderStats, error) {
	counts, err := s.storage.Queries.GetOrderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	totals, err := s.storage.Queries.ListConfirmedOrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return &OrderStats{
		PendingOrders:   counts.PendingCount,
		ConfirmedOrders: counts.ConfirmedCount,
		Revenue:         decimal.Sum(decimal.Zero, totals...),
	}, nil
}

func (s *OrderService) withItems(ctx context.Context, row db.Order) (*Order, error) {
	items, err := s.storage.Queries.GetOrderItemsWithProduct(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for order %s: %w", row.ID, err)
	}

	order := fromRow(row)
	order.Items = make([]OrderItem, 0, len(items))
	for _, it := range items {
		images := []string(it.ProductImages)
		if images == nil {
			images = []string{}
		}
		order.Items = append(order.Items, OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Price:     it.Price,
			Product: ProductSnapshot{
				ID:       it.ProductID,
				Name:     it.ProductName,
				Images:   images,
				Category: it.ProductCategory,
				Price:    it.ProductPrice,
			},
		})
	}
	return order, nil
}

func (s *OrderService) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// NewOrderNumber builds "VB-<last 6 digits of unix millis>-<3-digit random>".
// Numbers are for display and may collide.
func NewOrderNumber(now time.Time, intN func(int) int) string {
	return fmt.Sprintf("VB-%06d-%03d", now.UnixMilli()%1_000_000, intN(1000))
}

// ClampLimit applies the list defaults: non-positive means DefaultListLimit
// and anything above MaxListLimit is capped.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

func (it OrderItemInput) productID() string {
	if it.ProductID != "" {
		return it.ProductID
	}
	return it.ID
}

func validateCreate(in CreateOrderInput) error {
	if strings.TrimSpace(in.CustomerName) == "" ||
		strings.TrimSpace(in.CustomerEmail) == "" ||
		strings.TrimSpace(in.CustomerPhone) == "" ||
		in.ShippingAddress == nil || in.ShippingAddress.IsZero() ||
		len(in.Items) == 0 {
		return apperr.Validation("Missing required fields")
	}
	if !validEmail(in.CustomerEmail) {
		return apperr.Validation("Invalid customer email")
	}

	for i, item := range in.Items {
		switch {
		case item.productID() == "":
			return apperr.Validation("Item %d is missing a product", i+1)
		case strings.TrimSpace(item.Size) == "":
			return apperr.Validation("Item %d is missing a size", i+1)
		case item.Quantity <= 0:
			return apperr.Validation("Item %d has an invalid quantity", i+1)
		case item.Price.IsNegative():
			return apperr.Validation("Item %d has a negative price", i+1)
		}
	}
	return nil
}

// validEmail accepts a bare address only. The value ends up in mail headers.
func validEmail(email string) bool {
	if strings.ContainsAny(email, "\r\n") {
		return false
	}
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func fromRow(row db.Order) *Order {
	return &Order{
		ID:              row.ID,
		OrderNumber:     row.OrderNumber,
		CustomerName:    row.CustomerName,
		CustomerEmail:   row.CustomerEmail,
		CustomerPhone:   row.CustomerPhone,
		CustomerDNI:     nullablePtr(row.CustomerDni),
		ShippingAddress: row.ShippingAddress,
		Subtotal:        row.Subtotal,
		Shipping:        row.Shipping,
		Total:           row.Total,
		PaymentMethod:   PaymentMethod(row.PaymentMethod),
		Status:          row.Status,
		PaymentStatus:   row.PaymentStatus,
		PaymentID:       nullablePtr(row.PaymentID),
		Notes:           nullablePtr(row.Notes),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func optionalString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func nullablePtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
