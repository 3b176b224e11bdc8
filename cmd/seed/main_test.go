package main

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valubaby/valu-store/internal/catalog"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/storage"
)

func TestSeedCatalogAndOrders(t *testing.T) {
	store, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()

	products, err := seedCatalog(ctx, catalog.NewService(store))
	require.NoError(t, err)
	assert.Len(t, products, 20)

	vestidos, err := catalog.NewService(store).List(ctx, "Vestidos")
	require.NoError(t, err)
	assert.Len(t, vestidos, 5)

	orders := checkout.NewOrderService(store, nil)
	require.NoError(t, seedOrders(ctx, orders, gofakeit.New(42), products, 12))

	list, err := orders.List(ctx, checkout.ListOrdersParams{})
	require.NoError(t, err)
	assert.Len(t, list, 12)
	for _, o := range list {
		assert.NotEmpty(t, o.Items)
		assert.True(t, o.Total.Equal(o.Subtotal.Add(o.Shipping)))
	}

	require.NoError(t, resetData(ctx, store.DB()))
	count, err := store.Queries.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
