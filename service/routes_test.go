package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedViaAPI(t *testing.T, svc *Service) string {
	t.Helper()

	e := newRouter(svc)
	rec := doRequest(e, http.MethodPost, "/api/products", map[string]any{
		"name":     "Body Algodón Pima",
		"price":    59.9,
		"category": "Bodys",
		"sizes":    []string{"0-3M", "3-6M"},
		"stock":    3,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeBody(t, rec)["data"].(map[string]any)["id"].(string)
}

// TestTier1_PublicRoutes tests that public routes exist and are accessible
func TestTier1_PublicRoutes(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"Health check", "GET", "/health", nil, http.StatusOK},
		{"Product listing", "GET", "/api/products", nil, http.StatusOK},
		{"Product by category", "GET", "/api/products?category=Vestidos", nil, http.StatusOK},
		{"Unknown product", "GET", "/api/products/missing", nil, http.StatusNotFound},
		{"Unknown order", "GET", "/api/orders/missing", nil, http.StatusNotFound},
		{"Unknown order number", "GET", "/api/orders/number/VB-000000-000", nil, http.StatusNotFound},
		{"Empty cart", "POST", "/api/cart/validate", map[string]any{"items": []any{}}, http.StatusBadRequest},
		{"Admin verify without token", "GET", "/api/admin/verify", nil, http.StatusUnauthorized},
		{"Unknown route", "GET", "/api/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.method, tt.path, tt.body, false)

			assert.Equal(t, tt.wantStatus, rec.Code,
				"Route %s %s should return %d, got %d",
				tt.method, tt.path, tt.wantStatus, rec.Code)
		})
	}
}

// TestTier2_AdminProtectedRoutes tests that admin routes reject requests without the token
func TestTier2_AdminProtectedRoutes(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"Create product", "POST", "/api/products"},
		{"Update product", "PUT", "/api/products/p1"},
		{"Delete product", "DELETE", "/api/products/p1"},
		{"List orders", "GET", "/api/orders"},
		{"Order stats", "GET", "/api/orders/stats"},
		{"Update order status", "PUT", "/api/orders/o1/status"},
		{"Update order payment", "PUT", "/api/orders/o1/payment"},
		{"System info", "GET", "/api/admin/system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.method, tt.path, map[string]any{}, false)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Unauthorized", body["error"])
			assert.Equal(t, "Unauthorized: Invalid admin credentials", body["message"])
		})
	}
}

func TestTier3_AdminRoutesWithToken(t *testing.T) {
	e, _ := setupTestEcho(t)

	for _, path := range []string{"/api/orders", "/api/orders/stats", "/api/admin/system", "/api/admin/verify"} {
		rec := doRequest(e, http.MethodGet, path, nil, true)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestErrorEnvelope(t *testing.T) {
	e, _ := setupTestEcho(t)

	t.Run("validation", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/orders", map[string]any{"customerName": "Ana"}, false)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Validation failed", body["error"])
		assert.Equal(t, "Missing required fields", body["message"])
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/products/missing", nil, false)
		body := decodeBody(t, rec)
		assert.Equal(t, "Not found", body["error"])
		assert.Equal(t, "Product not found", body["message"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/nope", nil, false)
		body := decodeBody(t, rec)
		assert.Equal(t, "Route not found", body["error"])
		assert.Equal(t, false, body["success"])
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/cart/validate", "not an object", false)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, rec)["message"])
	})
}

func TestInternalErrorsHideDetailOutsideDevelopment(t *testing.T) {
	e, svc := setupTestEcho(t)
	require.NoError(t, svc.storage.Close())

	rec := doRequest(e, http.MethodGet, "/api/products", nil, false)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "Something went wrong", body["message"])

	rec = doRequest(e, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decodeBody(t, rec)["status"])
}

func TestInternalErrorsShowDetailInDevelopment(t *testing.T) {
	svc := setupTestService(t)
	svc.config.Environment = "development"
	e := newRouter(svc)
	require.NoError(t, svc.storage.Close())

	rec := doRequest(e, http.MethodGet, "/api/products", nil, false)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "database is closed")
}

func TestHealth(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doRequest(e, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.NotEmpty(t, body["timestamp"])
}

// TestCheckoutFlow walks the storefront path: browse, validate, order, pay, confirm.
func TestCheckoutFlow(t *testing.T) {
	svc := setupTestService(t)
	e := newRouter(svc)
	productID := seedViaAPI(t, svc)

	// Validate cart
	rec := doRequest(e, http.MethodPost, "/api/cart/validate", map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 2, "size": "0-3M"}},
	}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 119.8, decodeBody(t, rec)["subtotal"])

	// Over-stock line is rejected
	rec = doRequest(e, http.MethodPost, "/api/cart/validate", map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 4, "size": "0-3M"}},
	}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeBody(t, rec)["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "InsufficientStock", errs[0].(map[string]any)["kind"])

	// Place order
	rec = doRequest(e, http.MethodPost, "/api/orders", map[string]any{
		"customerName":  "Lucía Flores",
		"customerEmail": "lucia@example.com",
		"customerPhone": "987654321",
		"shippingAddress": map[string]any{
			"departamento": "Lima", "provincia": "Lima", "distrito": "Surco", "direccion": "Jr. Las Flores 456",
		},
		"items":         []map[string]any{{"id": productID, "quantity": 2, "size": "0-3M", "price": 59.9}},
		"subtotal":      119.8,
		"shipping":      10,
		"total":         129.8,
		"paymentMethod": "yape",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeBody(t, rec)["data"].(map[string]any)
	orderID := order["id"].(string)
	number := order["orderNumber"].(string)

	// Lookup by number
	rec = doRequest(e, http.MethodGet, "/api/orders/number/"+number, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	// Payment instructions and artifacts
	rec = doRequest(e, http.MethodGet, "/api/orders/"+orderID+"/payment-instructions", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paga con Yape", decodeBody(t, rec)["data"].(map[string]any)["title"])

	rec = doRequest(e, http.MethodGet, "/api/orders/"+orderID+"/payment-card.png", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = doRequest(e, http.MethodGet, "/api/orders/"+orderID+"/receipt.pdf", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	// Stock is untouched by ordering
	rec = doRequest(e, http.MethodGet, "/api/products/"+productID, nil, false)
	assert.Equal(t, float64(3), decodeBody(t, rec)["data"].(map[string]any)["stock"])

	// Admin confirms
	rec = doRequest(e, http.MethodPut, "/api/orders/"+orderID+"/status", map[string]any{"status": "CONFIRMED"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/orders/stats", nil, true)
	stats := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(1), stats["confirmedOrders"])
	assert.Equal(t, 129.8, stats["revenue"])

	// Notifications were queued for delivery
	assert.Equal(t, 2, svc.dispatcher.Stats().Pending)

	// Product referenced by an order cannot be deleted
	rec = doRequest(e, http.MethodDelete, "/api/products/"+productID, nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	e, _ := setupTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/admin/login", map[string]any{"password": testAdminToken}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testAdminToken, decodeBody(t, rec)["token"])

	rec = doRequest(e, http.MethodPost, "/api/admin/login", map[string]any{"password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/admin/login", map[string]any{}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
