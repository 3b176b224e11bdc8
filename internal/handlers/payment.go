package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/payment"
)

// PaymentHandler serves the manual payment instructions for an order. No
// money moves through the store; customers pay by wallet or transfer and send
// the voucher over WhatsApp.
type PaymentHandler struct {
	orders *checkout.OrderService
	config payment.Config
}

func NewPaymentHandler(orders *checkout.OrderService, cfg payment.Config) *PaymentHandler {
	return &PaymentHandler{orders: orders, config: cfg}
}

func (h *PaymentHandler) GetInstructions(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, h.config.For(order))
}

func (h *PaymentHandler) GetCard(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := payment.RenderCard(&buf, h.config.For(order)); err != nil {
		return fmt.Errorf("failed to render payment card for %s: %w", order.OrderNumber, err)
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (h *PaymentHandler) GetReceipt(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := payment.RenderReceipt(&buf, order, h.config.For(order)); err != nil {
		return fmt.Errorf("failed to render receipt for %s: %w", order.OrderNumber, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, order.OrderNumber))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
