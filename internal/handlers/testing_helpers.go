package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/auth"
	"github.com/valubaby/valu-store/internal/types"
	"github.com/valubaby/valu-store/storage"
	"github.com/valubaby/valu-store/storage/db"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// SetAdminToken attaches the admin header to the context's request
func SetAdminToken(c echo.Context, token string) {
	c.Request().Header.Set(auth.HeaderName, token)
}

// NewTestStorage creates an in-memory storage with migrations applied
func NewTestStorage() (*storage.Storage, func()) {
	store, cleanup, err := storage.NewTestStorage()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return store, cleanup
}

// CreateTestProduct inserts a product with the given price, stock and sizes
func CreateTestProduct(queries *db.Queries, id, name, price string, stock int64, sizes ...string) (db.Product, error) {
	now := time.Now().UTC()
	return queries.CreateProduct(context.Background(), db.CreateProductParams{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Images:    types.StringList{"/images/" + id + ".jpg"},
		Category:  "Bodys",
		Sizes:     types.StringList(sizes),
		Stock:     stock,
		Badge:     sql.NullString{},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
