package checkout

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/valubaby/valu-store/internal/types"
	"github.com/valubaby/valu-store/storage"
	"github.com/valubaby/valu-store/storage/db"
)

func setupTestStorage(t *testing.T) *storage.Storage {
	t.Helper()

	store, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return store
}

func seedProduct(t *testing.T, store *storage.Storage, id, name, price string, stock int64, sizes ...string) db.Product {
	t.Helper()

	now := time.Now().UTC()
	p, err := store.Queries.CreateProduct(context.Background(), db.CreateProductParams{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Images:    types.StringList{"https://images.example.com/" + id + ".jpg"},
		Category:  "Vestidos",
		Sizes:     types.StringList(sizes),
		Stock:     stock,
		Badge:     sql.NullString{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return p
}

func limaAddress() *types.Address {
	return &types.Address{
		Region:   "Lima",
		Province: "Lima",
		District: "Miraflores",
		Street:   "Av. Larco 123",
	}
}

// recordingNotifier captures orders handed to it.
type recordingNotifier struct {
	mu     sync.Mutex
	orders []*Order
}

func (r *recordingNotifier) OrderCreated(order *Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}
