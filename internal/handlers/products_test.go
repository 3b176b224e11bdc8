package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/internal/catalog"
)

func TestListProducts_FilterByCategory(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()

	_, err := CreateTestProduct(store.Queries, "body-1", "Body Pima", "59.90", 5, "0-3M")
	require.NoError(t, err)

	handler := NewProductsHandler(catalog.NewService(store))

	c, rec := NewTestContext(http.MethodGet, "/api/products?category=Bodys", nil)
	require.NoError(t, handler.ListProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])

	products := body["data"].([]interface{})
	require.Len(t, products, 1)
	product := products[0].(map[string]interface{})
	assert.Equal(t, "Body Pima", product["name"])
	assert.Equal(t, 59.9, product["price"], "prices are JSON numbers")

	c, rec = NewTestContext(http.MethodGet, "/api/products?category=Vestidos", nil)
	require.NoError(t, handler.ListProducts(c))

	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestGetProduct_NotFound(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewProductsHandler(catalog.NewService(store))

	c, _ := NewTestContext(http.MethodGet, "/api/products/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.GetProduct(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateProduct(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewProductsHandler(catalog.NewService(store))

	c, rec := NewTestContext(http.MethodPost, "/api/products", map[string]interface{}{
		"name":     "Vestido Tul Rosé",
		"price":    189,
		"category": "Vestidos",
		"sizes":    []string{"3-6M", "6-9M"},
		"stock":    4,
	})
	require.NoError(t, handler.CreateProduct(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, float64(4), data["stock"])
	assert.Equal(t, []interface{}{}, data["images"])
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewProductsHandler(catalog.NewService(store))

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"price": 10, "sizes": []string{"S"}}},
		{"negative price", map[string]interface{}{"name": "X", "price": -1, "sizes": []string{"S"}}},
		{"no sizes", map[string]interface{}{"name": "X", "price": 10, "sizes": []string{}}},
		{"negative stock", map[string]interface{}{"name": "X", "price": 10, "sizes": []string{"S"}, "stock": -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewTestContext(http.MethodPost, "/api/products", tt.body)
			err := handler.CreateProduct(c)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()

	_, err := CreateTestProduct(store.Queries, "body-1", "Body Pima", "59.90", 5, "0-3M")
	require.NoError(t, err)

	handler := NewProductsHandler(catalog.NewService(store))

	c, rec := NewTestContext(http.MethodPut, "/api/products/:id", map[string]interface{}{"stock": 0})
	c.SetParamNames("id")
	c.SetParamValues("body-1")
	require.NoError(t, handler.UpdateProduct(c))

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["stock"])
	assert.Equal(t, "Body Pima", data["name"], "fields not sent are kept")

	c, rec = NewTestContext(http.MethodDelete, "/api/products/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("body-1")
	require.NoError(t, handler.DeleteProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = NewTestContext(http.MethodDelete, "/api/products/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("body-1")
	assert.ErrorIs(t, handler.DeleteProduct(c), apperr.ErrNotFound)
}
