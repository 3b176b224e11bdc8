// Package client is a Go client for the storefront API together with the
// shopper's local cart state, for scripts and the valuctl CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "http://127.0.0.1:3001/api"
	defaultTimeout = 30 * time.Second
	adminHeader    = "X-Admin-Token"
)

// APIError is a non-2xx response carrying the server's error envelope.
type APIError struct {
	Status  int
	Title   string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.Status, e.Title)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   *int   `json:"count"`
	Message string `json:"message"`
}

type Client struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
	cache      *responseCache
}

type Option func(*Client)

func WithAdminToken(token string) Option {
	return func(c *Client) { c.adminToken = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = newResponseCache(ttl) }
}

// New creates a client for the API rooted at baseURL, e.g.
// http://127.0.0.1:3001/api.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      newResponseCache(DefaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SetAdminToken(token string) {
	c.adminToken = token
}

// InvalidateCache drops every cached product response.
func (c *Client) InvalidateCache() {
	c.cache.clear()
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, admin bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(adminHeader, c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// call performs the request and returns the body of a 2xx response.
func (c *Client) call(ctx context.Context, method, path string, body any, admin bool) ([]byte, error) {
	resp, err := c.doRequest(ctx, method, path, body, admin)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || (apiErr.Title == "" && apiErr.Message == "") {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		slog.Debug("API request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}
	return data, nil
}

func decodeData[T any](data []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return env.Data, fmt.Errorf("decode response: %w", err)
	}
	return env.Data, nil
}

func callData[T any](ctx context.Context, c *Client, method, path string, body any, admin bool) (T, error) {
	data, err := c.call(ctx, method, path, body, admin)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeData[T](data)
}

func (c *Client) cachedGet(ctx context.Context, path string) ([]byte, error) {
	return c.cache.fetch(ctx, path, func(ctx context.Context) ([]byte, error) {
		return c.call(ctx, http.MethodGet, path, nil, false)
	})
}

// Products lists the catalog, optionally filtered by category. Responses are
// cached per category.
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	data, err := c.cachedGet(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Product](data)
}

func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	data, err := c.cachedGet(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeData[*Product](data)
}

// ValidateCart checks the lines against the live catalog. A rejected cart is
// returned with Success false rather than as an error.
func (c *Client) ValidateCart(ctx context.Context, lines []CartLine) (*CartValidation, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/cart/validate", map[string]any{"items": lines}, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var result CartValidation
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &result, nil

	case http.StatusBadRequest:
		var rejection struct {
			Errors     []LineError     `json:"errors"`
			ValidItems []ValidatedLine `json:"validItems"`
			Error      string          `json:"error"`
			Message    string          `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if rejection.Errors == nil {
			return nil, &APIError{Status: resp.StatusCode, Title: rejection.Error, Message: rejection.Message}
		}
		return &CartValidation{Success: false, Items: rejection.ValidItems, Errors: rejection.Errors}, nil

	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	return callData[*Order](ctx, c, http.MethodPost, "/orders", req, false)
}

func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	return callData[*Order](ctx, c, http.MethodGet, "/orders/"+url.PathEscape(id), nil, false)
}

func (c *Client) OrderByNumber(ctx context.Context, number string) (*Order, error) {
	return callData[*Order](ctx, c, http.MethodGet, "/orders/number/"+url.PathEscape(number), nil, false)
}

func (c *Client) PaymentInstructions(ctx context.Context, orderID string) (*PaymentInstructions, error) {
	return callData[*PaymentInstructions](ctx, c, http.MethodGet, "/orders/"+url.PathEscape(orderID)+"/payment-instructions", nil, false)
}

// Download fetches a binary order document: "payment-card.png" or
// "receipt.pdf".
func (c *Client) Download(ctx context.Context, orderID, document string, w io.Writer) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID)+"/"+document, nil, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", document, err)
	}
	return nil
}

// Login exchanges the admin password for a token and keeps it for later
// admin calls.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	data, err := c.call(ctx, http.MethodPost, "/admin/login", map[string]string{"password": password}, false)
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	c.adminToken = resp.Token
	return resp.Token, nil
}

// Verify reports whether the current admin token is accepted.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	_, err := c.call(ctx, http.MethodGet, "/admin/verify", nil, true)
	if IsStatus(err, http.StatusUnauthorized) {
		return false, nil
	}
	return err == nil, err
}

func (c *Client) ListOrders(ctx context.Context, status string, limit int) ([]Order, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return callData[[]Order](ctx, c, http.MethodGet, path, nil, true)
}

func (c *Client) OrderStats(ctx context.Context) (*OrderStats, error) {
	return callData[*OrderStats](ctx, c, http.MethodGet, "/orders/stats", nil, true)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	return callData[*Order](ctx, c, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", map[string]string{"status": status}, true)
}

func (c *Client) UpdateOrderPayment(ctx context.Context, id, paymentStatus, paymentID string) (*Order, error) {
	body := map[string]string{"paymentStatus": paymentStatus, "paymentId": paymentID}
	return callData[*Order](ctx, c, http.MethodPut, "/orders/"+url.PathEscape(id)+"/payment", body, true)
}

// ProductInput mirrors the admin create/update body. Nil fields are left
// unchanged on update.
type ProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Sizes       []string         `json:"sizes,omitempty"`
	Stock       *int64           `json:"stock,omitempty"`
	Badge       *string          `json:"badge,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	p, err := callData[*Product](ctx, c, http.MethodPost, "/products", in, true)
	if err == nil {
		c.InvalidateCache()
	}
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	p, err := callData[*Product](ctx, c, http.MethodPut, "/products/"+url.PathEscape(id), in, true)
	if err == nil {
		c.InvalidateCache()
	}
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, true)
	if err == nil {
		c.InvalidateCache()
	}
	return err
}
