// Package payment builds the manual payment instructions shown after checkout
// (Yape, Plin, bank transfer, cash on delivery) and renders them as a shareable
// PNG card and a PDF receipt.
package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/types"
)

// Config holds the store's payment destinations.
type Config struct {
	WhatsAppNumber string
	YapeNumber     string
	PlinNumber     string
	BankName       string
	BankAccount    string
	BankHolder     string
}

type BankDetails struct {
	Bank    string `json:"bank"`
	Account string `json:"account"`
	Holder  string `json:"holder"`
}

type Instructions struct {
	OrderNumber  string                 `json:"orderNumber"`
	Method       checkout.PaymentMethod `json:"method"`
	Title        string                 `json:"title"`
	Amount       decimal.Decimal        `json:"amount"`
	AmountText   string                 `json:"amountText"`
	WalletNumber string                 `json:"walletNumber,omitempty"`
	Bank         *BankDetails           `json:"bank,omitempty"`
	Steps        []string               `json:"steps"`
	WhatsAppURL  string                 `json:"whatsappUrl,omitempty"`
}

// For builds the instructions for the order's payment method. Unknown methods
// fall back to Yape like the storefront does.
func (c Config) For(order *checkout.Order) Instructions {
	amount := types.FormatSoles(order.Total)
	ins := Instructions{
		OrderNumber: order.OrderNumber,
		Method:      order.PaymentMethod,
		Amount:      order.Total,
		AmountText:  amount,
	}

	switch order.PaymentMethod {
	case checkout.PaymentPlin:
		ins.Title = "Paga con Plin"
		ins.WalletNumber = c.PlinNumber
		ins.Steps = []string{
			`Abre tu app de Plin y selecciona "Enviar dinero"`,
			"Monto exacto: " + amount,
			"Escanea el QR o ingresa el número " + c.PlinNumber,
			"Envíanos tu comprobante por WhatsApp",
		}
		ins.WhatsAppURL = c.whatsApp(order, "Adjunto comprobante de pago por Plin.")

	case checkout.PaymentTransfer:
		ins.Title = "Transferencia Bancaria"
		ins.Bank = &BankDetails{Bank: c.BankName, Account: c.BankAccount, Holder: c.BankHolder}
		ins.Steps = []string{
			"Titular: " + c.BankHolder,
			"Monto exacto a depositar: " + amount,
			"Realiza la transferencia desde tu banco",
			"Envíanos tu voucher por WhatsApp",
		}
		ins.WhatsAppURL = c.whatsApp(order, "Adjunto voucher de transferencia bancaria.")

	case checkout.PaymentCOD:
		ins.Title = "Pago Contraentrega"
		ins.Steps = []string{
			fmt.Sprintf("Pagarás %s en efectivo al recibir tu pedido", amount),
			"Te contactaremos por WhatsApp para coordinar la entrega",
			"Recibirás tu pedido en 24-48 horas (Lima Metropolitana)",
			"Verifica tu pedido antes de pagar al repartidor",
		}

	default:
		ins.Method = checkout.PaymentYape
		ins.Title = "Paga con Yape"
		ins.WalletNumber = c.YapeNumber
		ins.Steps = []string{
			"Escanea el QR o envía a " + c.YapeNumber,
			"Monto exacto: " + amount,
			"Toma una captura de tu comprobante de pago",
			"Envíanos la captura por WhatsApp para confirmar tu pedido",
		}
		ins.WhatsAppURL = c.whatsApp(order, "Adjunto comprobante de pago por Yape.")
	}

	return ins
}

func (c Config) whatsApp(order *checkout.Order, line string) string {
	if c.WhatsAppNumber == "" {
		return ""
	}
	msg := fmt.Sprintf("Hola! He realizado mi pedido en VALÚ Baby (#%s).\n%s\nMonto: %s",
		order.OrderNumber, line, types.FormatSoles(order.Total))
	return WhatsAppURL(c.WhatsAppNumber, msg)
}

// WhatsAppURL builds a wa.me deep link with a prefilled message. Spaces are
// encoded as %20 because WhatsApp does not decode "+".
func WhatsAppURL(number, text string) string {
	number = strings.NewReplacer(" ", "", "+", "", "-", "").Replace(number)
	return "https://wa.me/" + number + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
