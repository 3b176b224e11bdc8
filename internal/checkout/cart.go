package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/storage"
	"github.com/valubaby/valu-store/storage/db"
)

// LineErrorKind classifies why a cart line was rejected.
type LineErrorKind string

const (
	LineNotFound          LineErrorKind = "NotFound"
	LineSizeUnavailable   LineErrorKind = "SizeUnavailable"
	LineInsufficientStock LineErrorKind = "InsufficientStock"
	LineInvalidQuantity   LineErrorKind = "InvalidQuantity"
)

// CartLineInput is one line submitted for validation. The storefront cart
// keys lines by "id"; ProductID wins when both are set.
type CartLineInput struct {
	ProductID string `json:"productId"`
	ID        string `json:"id,omitempty"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
}

func (l CartLineInput) productID() string {
	if l.ProductID != "" {
		return l.ProductID
	}
	return l.ID
}

type ValidatedLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Size      string          `json:"size"`
	Images    []string        `json:"images"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type LineError struct {
	ProductID   string        `json:"productId"`
	ProductName string        `json:"productName,omitempty"`
	Kind        LineErrorKind `json:"kind"`
	Message     string        `json:"error"`
}

// CartValidation is the outcome of validating a whole cart. Items holds every
// accepted line even when other lines failed.
type CartValidation struct {
	Success   bool            `json:"success"`
	Items     []ValidatedLine `json:"items"`
	Errors    []LineError     `json:"errors,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int64           `json:"itemCount"`
}

// ProductLookup resolves catalog products by id. *db.Queries satisfies it.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (db.Product, error)
}

// Validator checks cart lines against the live catalog. It only reads; stock
// is never reserved, so two carts may both be accepted for the last unit.
type Validator struct {
	products ProductLookup
}

func NewValidator(products ProductLookup) *Validator {
	return &Validator{products: products}
}

// ValidateCart checks every line independently and collects all failures
// instead of stopping at the first one.
func (v *Validator) ValidateCart(ctx context.Context, lines []CartLineInput) (*CartValidation, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("Cart items are required")
	}

	result := &CartValidation{
		Items:    make([]ValidatedLine, 0, len(lines)),
		Subtotal: decimal.Zero,
	}

	for _, line := range lines {
		id := line.productID()

		product, err := v.products.GetProduct(ctx, id)
		if err != nil {
			mapped := storage.MapError(err, "Product not found")
			if !errors.Is(mapped, apperr.ErrNotFound) {
				return nil, fmt.Errorf("failed to load product %s: %w", id, err)
			}
			result.Errors = append(result.Errors, LineError{
				ProductID: id,
				Kind:      LineNotFound,
				Message:   "Product not found",
			})
			continue
		}

		if lineErr := checkLine(product, line); lineErr != nil {
			result.Errors = append(result.Errors, *lineErr)
			continue
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
		result.Items = append(result.Items, ValidatedLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Images:    append([]string{}, product.Images...),
			Subtotal:  subtotal,
		})
		result.Subtotal = result.Subtotal.Add(subtotal)
		result.ItemCount += line.Quantity
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

func checkLine(product db.Product, line CartLineInput) *LineError {
	lineErr := &LineError{ProductID: product.ID, ProductName: product.Name}

	switch {
	case line.Quantity <= 0:
		lineErr.Kind = LineInvalidQuantity
		lineErr.Message = fmt.Sprintf("Invalid quantity: %d", line.Quantity)
	case !product.Sizes.Contains(line.Size):
		lineErr.Kind = LineSizeUnavailable
		lineErr.Message = fmt.Sprintf("Size %s not available", line.Size)
	case line.Quantity > product.Stock:
		lineErr.Kind = LineInsufficientStock
		lineErr.Message = fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", product.Stock, line.Quantity)
	default:
		return nil
	}
	return lineErr
}
