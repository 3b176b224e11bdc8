package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/catalog"
)

type ProductsHandler struct {
	catalog *catalog.Service
}

func NewProductsHandler(c *catalog.Service) *ProductsHandler {
	return &ProductsHandler{catalog: c}
}

// ListProducts handles GET /api/products?category=
func (h *ProductsHandler) ListProducts(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))

	products, err := h.catalog.List(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return list(c, products)
}

func (h *ProductsHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, product)
}

func (h *ProductsHandler) CreateProduct(c echo.Context) error {
	var in catalog.ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}

	product, err := h.catalog.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return created(c, product)
}

func (h *ProductsHandler) UpdateProduct(c echo.Context) error {
	var in catalog.ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}

	product, err := h.catalog.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return ok(c, product)
}

func (h *ProductsHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}
