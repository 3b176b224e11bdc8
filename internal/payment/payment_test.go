package payment

import (
	"bytes"
	"image/png"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/types"
)

var testConfig = Config{
	WhatsAppNumber: "51901440221",
	YapeNumber:     "901 440 221",
	PlinNumber:     "901 440 221",
	BankName:       "BBVA",
	BankAccount:    "0011-0253-0200-4420-47",
	BankHolder:     "VALÚ BABY E.I.R.L.",
}

func order(method checkout.PaymentMethod) *checkout.Order {
	return &checkout.Order{
		ID:            "01J0ABC",
		OrderNumber:   "VB-123456-007",
		CustomerName:  "Lucía Flores",
		CustomerEmail: "lucia@example.com",
		CustomerPhone: "987654321",
		ShippingAddress: types.Address{
			Region: "Lima", Province: "Lima", District: "Surco", Street: "Jr. Las Flores 456", Reference: "Frente al parque",
		},
		Items: []checkout.OrderItem{{
			ProductID: "p1",
			Quantity:  2,
			Size:      "0-3M",
			Price:     decimal.RequireFromString("79.90"),
			Product:   checkout.ProductSnapshot{ID: "p1", Name: "Body Algodón Pima"},
		}},
		Subtotal:      decimal.RequireFromString("159.80"),
		Shipping:      decimal.NewFromInt(10),
		Total:         decimal.RequireFromString("169.80"),
		PaymentMethod: method,
		CreatedAt:     time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestInstructions_Yape(t *testing.T) {
	ins := testConfig.For(order(checkout.PaymentYape))

	assert.Equal(t, "Paga con Yape", ins.Title)
	assert.Equal(t, "S/ 169.80", ins.AmountText)
	assert.Equal(t, "901 440 221", ins.WalletNumber)
	assert.Nil(t, ins.Bank)
	require.Len(t, ins.Steps, 4)
	assert.Contains(t, ins.Steps[1], "S/ 169.80")

	u, err := url.Parse(ins.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/51901440221", u.Path)
	text := u.Query().Get("text")
	assert.Contains(t, text, "por Yape")
	assert.Contains(t, text, "Monto: S/ 169.80")
	assert.Contains(t, text, "VB-123456-007")
}

func TestInstructions_Plin(t *testing.T) {
	ins := testConfig.For(order(checkout.PaymentPlin))

	assert.Equal(t, checkout.PaymentPlin, ins.Method)
	assert.Equal(t, "Paga con Plin", ins.Title)
	assert.Contains(t, ins.WhatsAppURL, "por%20Plin")
}

func TestInstructions_Transfer(t *testing.T) {
	ins := testConfig.For(order(checkout.PaymentTransfer))

	require.NotNil(t, ins.Bank)
	assert.Equal(t, "0011-0253-0200-4420-47", ins.Bank.Account)
	assert.Equal(t, "VALÚ BABY E.I.R.L.", ins.Bank.Holder)
	assert.Empty(t, ins.WalletNumber)
	assert.Contains(t, ins.WhatsAppURL, "transferencia")
}

func TestInstructions_CashOnDeliveryHasNoWhatsAppLink(t *testing.T) {
	ins := testConfig.For(order(checkout.PaymentCOD))

	assert.Equal(t, "Pago Contraentrega", ins.Title)
	assert.Empty(t, ins.WhatsAppURL)
	assert.Contains(t, ins.Steps[0], "S/ 169.80")
}

func TestInstructions_UnknownMethodFallsBackToYape(t *testing.T) {
	ins := testConfig.For(order(checkout.PaymentMethod("crypto")))

	assert.Equal(t, checkout.PaymentYape, ins.Method)
	assert.Equal(t, "Paga con Yape", ins.Title)
}

func TestInstructions_NoWhatsAppNumber(t *testing.T) {
	cfg := testConfig
	cfg.WhatsAppNumber = ""

	assert.Empty(t, cfg.For(order(checkout.PaymentYape)).WhatsAppURL)
}

func TestWhatsAppURL(t *testing.T) {
	link := WhatsAppURL("+51 901-440-221", "Hola & gracias\nMonto: S/ 10.00")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/51901440221?text="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola & gracias\nMonto: S/ 10.00", u.Query().Get("text"))
}

func TestRenderCard(t *testing.T) {
	for _, method := range []checkout.PaymentMethod{checkout.PaymentYape, checkout.PaymentTransfer, checkout.PaymentCOD} {
		t.Run(string(method), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderCard(&buf, testConfig.For(order(method))))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, cardWidth, img.Bounds().Dx())
			assert.Equal(t, cardHeight, img.Bounds().Dy())
		})
	}
}

func TestRenderReceipt(t *testing.T) {
	o := order(checkout.PaymentTransfer)

	var buf bytes.Buffer
	require.NoError(t, RenderReceipt(&buf, o, testConfig.For(o)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Body", truncate("  Body ", 10))
	assert.Equal(t, "Conjunt...", truncate("Conjunto Tejido Alpaca", 10))
}
