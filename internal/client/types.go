package client

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/types"
)

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

// FirstImage is empty for products without images.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
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
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Kind        string `json:"kind"`
	Message     string `json:"error"`
}

// CartValidation is the server's verdict on a cart. When Success is false,
// Items holds the lines that passed.
type CartValidation struct {
	Success   bool            `json:"success"`
	Items     []ValidatedLine `json:"items"`
	Errors    []LineError     `json:"errors,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int64           `json:"itemCount"`
}

type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
}

type OrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerDNI     string             `json:"customerDNI,omitempty"`
	ShippingAddress *types.Address     `json:"shippingAddress"`
	Items           []OrderItemRequest `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Shipping        decimal.Decimal    `json:"shipping"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes,omitempty"`
}

type OrderProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Images   []string        `json:"images"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Product   OrderProduct    `json:"product"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerDNI     *string         `json:"customerDNI"`
	ShippingAddress types.Address   `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentID       *string         `json:"paymentId"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderStats struct {
	PendingOrders   int64           `json:"pendingOrders"`
	ConfirmedOrders int64           `json:"confirmedOrders"`
	Revenue         decimal.Decimal `json:"revenue"`
}

type BankDetails struct {
	Bank    string `json:"bank"`
	Account string `json:"account"`
	Holder  string `json:"holder"`
}

type PaymentInstructions struct {
	OrderNumber  string          `json:"orderNumber"`
	Method       string          `json:"method"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	AmountText   string          `json:"amountText"`
	WalletNumber string          `json:"walletNumber,omitempty"`
	Bank         *BankDetails    `json:"bank,omitempty"`
	Steps        []string        `json:"steps"`
	WhatsAppURL  string          `json:"whatsappUrl,omitempty"`
}
