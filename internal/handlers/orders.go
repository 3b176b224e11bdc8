package handlers

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/internal/checkout"
)

type OrdersHandler struct {
	orders *checkout.OrderService
}

func NewOrdersHandler(orders *checkout.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
	PaymentID     string `json:"paymentId"`
}

// CreateOrder handles POST /api/orders. Notifications go out asynchronously
// after the order is committed.
func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	var in checkout.CreateOrderInput
	if err := bind(c, &in); err != nil {
		return err
	}

	order, err := h.orders.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return created(c, order)
}

// ListOrders handles GET /api/orders?status=&limit= (admin).
func (h *OrdersHandler) ListOrders(c echo.Context) error {
	params := checkout.ListOrdersParams{
		Status: strings.TrimSpace(c.QueryParam("status")),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("Invalid limit: %s", raw)
		}
		params.Limit = limit
	}

	orders, err := h.orders.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return list(c, orders)
}

func (h *OrdersHandler) GetStats(c echo.Context) error {
	stats, err := h.orders.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}

func (h *OrdersHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, order)
}

func (h *OrdersHandler) GetOrderByNumber(c echo.Context) error {
	order, err := h.orders.GetByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return err
	}
	return ok(c, order)
}

func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return ok(c, order)
}

func (h *OrdersHandler) UpdatePayment(c echo.Context) error {
	var req updatePaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdatePayment(c.Request().Context(), c.Param("id"), req.PaymentStatus, req.PaymentID)
	if err != nil {
		return err
	}
	return ok(c, order)
}
