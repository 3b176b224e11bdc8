// Package catalog owns the product catalog: listing, lookup and the admin
// create/update/delete operations.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/internal/types"
	"github.com/valubaby/valu-store/storage"
	"github.com/valubaby/valu-store/storage/db"
)

const productNotFound = "Product not found"

// Product is the public representation of a catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Sizes       []string        `json:"sizes"`
	Stock       int64           `json:"stock"`
	Badge       *string         `json:"badge"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductInput carries admin writes. Nil fields are "not provided": Create
// applies defaults, Update keeps the stored value.
type ProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Images      []string         `json:"images"`
	Category    *string          `json:"category"`
	Sizes       []string         `json:"sizes"`
	Stock       *int64           `json:"stock"`
	Badge       *string          `json:"badge"`
}

type Service struct {
	storage *storage.Storage
}

func NewService(s *storage.Storage) *Service {
	return &Service{storage: s}
}

// List returns products newest first, optionally restricted to one category.
func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	var (
		rows []db.Product
		err  error
	)
	if category != "" {
		rows, err = s.storage.Queries.ListProductsByCategory(ctx, category)
	} else {
		rows, err = s.storage.Queries.ListProducts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, FromRow(row))
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	row, err := s.storage.Queries.GetProduct(ctx, id)
	if err != nil {
		return nil, storage.MapError(err, productNotFound)
	}
	p := FromRow(row)
	return &p, nil
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*Product, error) {
	var p Product
	in.applyTo(&p)
	if err := validate(p, in.Price != nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row, err := s.storage.Queries.CreateProduct(ctx, db.CreateProductParams{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      types.StringList(p.Images),
		Category:    p.Category,
		Sizes:       types.StringList(p.Sizes),
		Stock:       p.Stock,
		Badge:       nullString(p.Badge),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, storage.MapError(err, productNotFound)
	}

	slog.Info("product created", "product_id", row.ID, "name", row.Name)
	created := FromRow(row)
	return &created, nil
}

// Update applies the provided fields over the stored product.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p := *existing
	in.applyTo(&p)
	if err := validate(p, true); err != nil {
		return nil, err
	}

	row, err := s.storage.Queries.UpdateProduct(ctx, db.UpdateProductParams{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      types.StringList(p.Images),
		Category:    p.Category,
		Sizes:       types.StringList(p.Sizes),
		Stock:       p.Stock,
		Badge:       nullString(p.Badge),
		UpdatedAt:   time.Now().UTC(),
		ID:          id,
	})
	if err != nil {
		return nil, storage.MapError(err, productNotFound)
	}

	updated := FromRow(row)
	return &updated, nil
}

// Delete removes a product. Products referenced by orders cannot be deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.storage.Queries.DeleteProduct(ctx, id)
	if err != nil {
		return storage.MapError(err, productNotFound)
	}
	if n == 0 {
		return apperr.NotFound(productNotFound)
	}
	slog.Info("product deleted", "product_id", id)
	return nil
}

func (in ProductInput) applyTo(p *Product) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Badge != nil {
		if b := strings.TrimSpace(*in.Badge); b != "" {
			p.Badge = &b
		} else {
			p.Badge = nil
		}
	}
}

func validate(p Product, hasPrice bool) error {
	switch {
	case p.Name == "":
		return apperr.Validation("Product name is required")
	case !hasPrice:
		return apperr.Validation("Product price is required")
	case p.Price.IsNegative():
		return apperr.Validation("Product price must be zero or greater")
	case len(p.Sizes) == 0:
		return apperr.Validation("At least one size is required")
	case p.Stock < 0:
		return apperr.Validation("Stock must be zero or greater")
	}
	for _, size := range p.Sizes {
		if strings.TrimSpace(size) == "" {
			return apperr.Validation("Sizes must not be blank")
		}
	}
	return nil
}

// FromRow converts a stored product into its public form.
func FromRow(row db.Product) Product {
	p := Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Images:      nonNil(row.Images),
		Category:    row.Category,
		Sizes:       nonNil(row.Sizes),
		Stock:       row.Stock,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Badge.Valid {
		b := row.Badge.String
		p.Badge = &b
	}
	return p
}

func nonNil(l types.StringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
