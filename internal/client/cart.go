package client

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Line is one cart entry. A product appears once per size.
type Line struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Size     string          `json:"size"`
	Quantity int64           `json:"quantity"`
	Image    string          `json:"image"`
}

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int64           `json:"itemCount"`
}

type cartDocument struct {
	Items     []Line    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cart is the shopper's local cart. Every change is written to the store.
type Cart struct {
	mu    sync.Mutex
	store Store
	items []Line
	now   func() time.Time
}

// LoadCart restores the cart from the store. A corrupt document is logged and
// replaced by an empty cart.
func LoadCart(store Store) (*Cart, error) {
	c := &Cart{store: store, now: time.Now}

	var doc cartDocument
	found, err := store.Load(CartKey, &doc)
	switch {
	case err != nil:
		slog.Warn("discarding unreadable cart", "error", err)
	case found:
		c.items = doc.Items
	}
	return c, nil
}

// Add merges the quantity into an existing (id, size) line or appends a new
// one. A quantity below one counts as one.
func (c *Cart) Add(line Line) error {
	if line.ID == "" {
		return fmt.Errorf("cart line needs a product id")
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(line.ID, line.Size); i >= 0 {
		c.items[i].Quantity += line.Quantity
	} else {
		c.items = append(c.items, line)
	}
	return c.save()
}

func (c *Cart) Remove(id, size string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(id, size); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	return c.save()
}

// UpdateQuantity sets the line's quantity; zero or less removes it. Unknown
// lines are ignored.
func (c *Cart) UpdateQuantity(id, size string, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id, size)
	if i < 0 {
		return nil
	}
	if quantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	} else {
		c.items[i].Quantity = quantity
	}
	return c.save()
}

func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.items...)
}

func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := Totals{Subtotal: decimal.Zero}
	for _, l := range c.items {
		t.Subtotal = t.Subtotal.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
		t.ItemCount += l.Quantity
	}
	return t
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.save()
}

// CartLines converts the cart into the validation request body.
func (c *Cart) CartLines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]CartLine, 0, len(c.items))
	for _, l := range c.items {
		lines = append(lines, CartLine{ProductID: l.ID, Quantity: l.Quantity, Size: l.Size})
	}
	return lines
}

// OrderItems converts the cart into order lines at the prices the shopper saw.
func (c *Cart) OrderItems() []OrderItemRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]OrderItemRequest, 0, len(c.items))
	for _, l := range c.items {
		items = append(items, OrderItemRequest{ProductID: l.ID, Quantity: l.Quantity, Size: l.Size, Price: l.Price})
	}
	return items
}

func (c *Cart) find(id, size string) int {
	for i, l := range c.items {
		if l.ID == id && l.Size == size {
			return i
		}
	}
	return -1
}

func (c *Cart) save() error {
	items := c.items
	if items == nil {
		items = []Line{}
	}
	return c.store.Save(CartKey, cartDocument{Items: items, UpdatedAt: c.now().UTC()})
}

// SavePendingOrder keeps the submitted order for the confirmation step.
func SavePendingOrder(store Store, order *Order) error {
	return store.Save(PendingOrderKey, order)
}

// LoadPendingOrder returns nil when no order is pending.
func LoadPendingOrder(store Store) (*Order, error) {
	var order Order
	found, err := store.Load(PendingOrderKey, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

func ClearPendingOrder(store Store) error {
	return store.Delete(PendingOrderKey)
}
