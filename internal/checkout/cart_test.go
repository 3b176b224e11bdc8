package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/storage/db"
)

func TestValidateCart_AllLinesValid(t *testing.T) {
	store := setupTestStorage(t)
	seedProduct(t, store, "dress", "Rosé Tulle Dress", "189", 8, "0-3M", "3-6M")
	seedProduct(t, store, "band", "Delicate Headband", "39.90", 50, "One Size")

	v := NewValidator(store.Queries)
	result, err := v.ValidateCart(context.Background(), []CartLineInput{
		{ProductID: "dress", Size: "3-6M", Quantity: 2},
		{ID: "band", Size: "One Size", Quantity: 3},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "band", result.Items[1].ProductID, "id field is accepted as product id")
	assert.True(t, decimal.RequireFromString("378").Equal(result.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("497.70").Equal(result.Subtotal))
	assert.Equal(t, int64(5), result.ItemCount)
}

func TestValidateCart_UsesCurrentCatalogPrice(t *testing.T) {
	store := setupTestStorage(t)
	p := seedProduct(t, store, "dress", "Rosé Tulle Dress", "189", 8, "0-3M")

	_, err := store.Queries.UpdateProduct(context.Background(), db.UpdateProductParams{
		Name: p.Name, Price: decimal.NewFromInt(150), Images: p.Images, Category: p.Category,
		Sizes: p.Sizes, Stock: p.Stock, UpdatedAt: p.UpdatedAt, ID: p.ID,
	})
	require.NoError(t, err)

	result, err := NewValidator(store.Queries).ValidateCart(context.Background(), []CartLineInput{
		{ProductID: "dress", Size: "0-3M", Quantity: 2},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(result.Subtotal))
}

func TestValidateCart_CollectsEveryFailure(t *testing.T) {
	store := setupTestStorage(t)
	seedProduct(t, store, "dress", "Rosé Tulle Dress", "189", 1, "0-3M")
	seedProduct(t, store, "blanket", "Cashmere Blanket", "189", 15, "80x100cm")

	result, err := NewValidator(store.Queries).ValidateCart(context.Background(), []CartLineInput{
		{ProductID: "ghost", Size: "0-3M", Quantity: 1},
		{ProductID: "dress", Size: "12M", Quantity: 1},
		{ProductID: "dress", Size: "0-3M", Quantity: 2},
		{ProductID: "dress", Size: "0-3M", Quantity: 0},
		{ProductID: "blanket", Size: "80x100cm", Quantity: 1},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 4)

	assert.Equal(t, LineNotFound, result.Errors[0].Kind)
	assert.Equal(t, "Product not found", result.Errors[0].Message)

	assert.Equal(t, LineSizeUnavailable, result.Errors[1].Kind)
	assert.Equal(t, "Size 12M not available", result.Errors[1].Message)
	assert.Equal(t, "Rosé Tulle Dress", result.Errors[1].ProductName)

	assert.Equal(t, LineInsufficientStock, result.Errors[2].Kind)
	assert.Equal(t, "Insufficient stock. Available: 1, Requested: 2", result.Errors[2].Message)

	assert.Equal(t, LineInvalidQuantity, result.Errors[3].Kind)

	require.Len(t, result.Items, 1, "valid lines are still reported")
	assert.Equal(t, "blanket", result.Items[0].ProductID)
}

func TestValidateCart_EmptyCart(t *testing.T) {
	store := setupTestStorage(t)

	_, err := NewValidator(store.Queries).ValidateCart(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Cart items are required", apperr.MessageOf(err))
}

func TestValidateCart_DoesNotReserveStock(t *testing.T) {
	store := setupTestStorage(t)
	seedProduct(t, store, "gown", "Christening Gown", "239", 1, "0-3M")

	v := NewValidator(store.Queries)
	lines := []CartLineInput{{ProductID: "gown", Size: "0-3M", Quantity: 1}}

	var wg sync.WaitGroup
	results := make([]*CartValidation, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = v.ValidateCart(context.Background(), lines)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Success, "both checkouts see the last unit")
	}

	p, err := store.Queries.GetProduct(context.Background(), "gown")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Stock)
}

type failingLookup struct{}

func (failingLookup) GetProduct(context.Context, string) (db.Product, error) {
	return db.Product{}, errors.New("database is locked")
}

func TestValidateCart_StorageFailureIsNotALineError(t *testing.T) {
	_, err := NewValidator(failingLookup{}).ValidateCart(context.Background(), []CartLineInput{
		{ProductID: "dress", Size: "0-3M", Quantity: 1},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
