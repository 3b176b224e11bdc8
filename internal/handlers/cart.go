package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/checkout"
)

type CartHandler struct {
	validator *checkout.Validator
}

func NewCartHandler(v *checkout.Validator) *CartHandler {
	return &CartHandler{validator: v}
}

type validateCartRequest struct {
	Items []checkout.CartLineInput `json:"items"`
}

// cartRejection is returned when at least one line failed. Lines that did
// pass are still reported so the storefront can keep them.
type cartRejection struct {
	Success    bool                     `json:"success"`
	Errors     []checkout.LineError     `json:"errors"`
	ValidItems []checkout.ValidatedLine `json:"validItems"`
}

// ValidateCart handles POST /api/cart/validate.
func (h *CartHandler) ValidateCart(c echo.Context) error {
	var req validateCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.validator.ValidateCart(c.Request().Context(), req.Items)
	if err != nil {
		return err
	}

	if !result.Success {
		return c.JSON(http.StatusBadRequest, cartRejection{
			Success:    false,
			Errors:     result.Errors,
			ValidItems: result.Items,
		})
	}
	return c.JSON(http.StatusOK, result)
}
