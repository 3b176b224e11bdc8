package client

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dress(size string, qty int64) Line {
	return Line{ID: "dress", Name: "Rosé Tulle Dress", Price: decimal.NewFromInt(189), Size: size, Quantity: qty}
}

func TestCart_AddMergesSameProductAndSize(t *testing.T) {
	store := NewMemoryStore()
	cart, err := LoadCart(store)
	require.NoError(t, err)

	require.NoError(t, cart.Add(dress("3-6M", 1)))
	require.NoError(t, cart.Add(dress("3-6M", 2)))
	require.NoError(t, cart.Add(dress("6-12M", 0)))

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, int64(1), items[1].Quantity, "zero quantity counts as one")

	totals := cart.Totals()
	assert.Equal(t, int64(4), totals.ItemCount)
	assert.True(t, decimal.NewFromInt(756).Equal(totals.Subtotal))
}

func TestCart_UpdateQuantityAndRemove(t *testing.T) {
	cart, err := LoadCart(NewMemoryStore())
	require.NoError(t, err)

	require.NoError(t, cart.Add(dress("3-6M", 1)))
	require.NoError(t, cart.Add(dress("6-12M", 1)))

	require.NoError(t, cart.UpdateQuantity("dress", "3-6M", 5))
	assert.Equal(t, int64(5), cart.Items()[0].Quantity)

	require.NoError(t, cart.UpdateQuantity("dress", "3-6M", 0))
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, "6-12M", cart.Items()[0].Size)

	require.NoError(t, cart.UpdateQuantity("missing", "3-6M", 2))
	require.NoError(t, cart.Remove("dress", "6-12M"))
	assert.Empty(t, cart.Items())
	assert.True(t, cart.Totals().Subtotal.IsZero())
}

func TestCart_RejectsLineWithoutProduct(t *testing.T) {
	cart, err := LoadCart(NewMemoryStore())
	require.NoError(t, err)
	assert.Error(t, cart.Add(Line{Size: "3-6M"}))
}

func TestCart_PersistsAcrossLoads(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	cart, err := LoadCart(store)
	require.NoError(t, err)
	cart.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, cart.Add(dress("3-6M", 2)))

	var doc cartDocument
	found, err := store.Load(CartKey, &doc)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), doc.UpdatedAt)

	reloaded, err := LoadCart(store)
	require.NoError(t, err)
	assert.Equal(t, cart.Items(), reloaded.Items())

	require.NoError(t, reloaded.Clear())
	found, err = store.Load(CartKey, &doc)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotNil(t, doc.Items, "a cleared cart is stored as an empty list")
	assert.Empty(t, doc.Items)
}

func TestCart_CorruptDocumentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, writeFile(dir, CartKey, "{not json"))

	cart, err := LoadCart(store)
	require.NoError(t, err)
	assert.Empty(t, cart.Items())
}

func TestCart_RequestConversions(t *testing.T) {
	cart, err := LoadCart(NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, cart.Add(dress("3-6M", 2)))

	assert.Equal(t, []CartLine{{ProductID: "dress", Quantity: 2, Size: "3-6M"}}, cart.CartLines())

	items := cart.OrderItems()
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(189).Equal(items[0].Price))
}

func TestPendingOrder(t *testing.T) {
	store := NewMemoryStore()

	pending, err := LoadPendingOrder(store)
	require.NoError(t, err)
	assert.Nil(t, pending)

	require.NoError(t, SavePendingOrder(store, &Order{ID: "01HZX", OrderNumber: "VB-000001-001"}))
	pending, err = LoadPendingOrder(store)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "VB-000001-001", pending.OrderNumber)

	require.NoError(t, ClearPendingOrder(store))
	pending, err = LoadPendingOrder(store)
	require.NoError(t, err)
	assert.Nil(t, pending)
}
