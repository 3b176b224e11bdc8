package payment

import (
	"fmt"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/types"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Card layout, in pixels.
const (
	cardWidth  = 720
	cardHeight = 1000
	qrSize     = 300
	cardMargin = 60
)

type fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

var loadFonts = sync.OnceValues(func() (fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fonts{}, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fonts{}, fmt.Errorf("parse bold font: %w", err)
	}
	return fonts{regular: regular, bold: bold}, nil
})

// RenderCard draws a PNG card with the amount, the destination and a QR code
// of the WhatsApp link, for customers to keep or share.
func RenderCard(w io.Writer, ins Instructions) error {
	f, err := loadFonts()
	if err != nil {
		return err
	}

	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetHexColor("#fdf6f5")
	dc.Clear()

	// Header band
	dc.SetHexColor("#eebbba")
	dc.DrawRectangle(0, 0, cardWidth, 140)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(truetype.NewFace(f.bold, &truetype.Options{Size: 44}))
	dc.DrawStringAnchored("VALÚ Baby", cardWidth/2, 70, 0.5, 0.5)

	dc.SetHexColor("#4a3f3f")
	dc.SetFontFace(truetype.NewFace(f.bold, &truetype.Options{Size: 34}))
	dc.DrawStringAnchored(ins.Title, cardWidth/2, 200, 0.5, 0.5)

	dc.SetFontFace(truetype.NewFace(f.regular, &truetype.Options{Size: 22}))
	dc.DrawStringAnchored("Orden #"+ins.OrderNumber, cardWidth/2, 245, 0.5, 0.5)

	dc.SetHexColor("#c97c7a")
	dc.SetFontFace(truetype.NewFace(f.bold, &truetype.Options{Size: 64}))
	dc.DrawStringAnchored(ins.AmountText, cardWidth/2, 320, 0.5, 0.5)

	dc.SetHexColor("#4a3f3f")
	dc.SetFontFace(truetype.NewFace(f.regular, &truetype.Options{Size: 24}))
	y := 400.0
	for _, line := range destinationLines(ins) {
		dc.DrawStringAnchored(line, cardWidth/2, y, 0.5, 0.5)
		y += 34
	}

	if ins.WhatsAppURL != "" {
		qr, err := qrcode.New(ins.WhatsAppURL, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("generate QR code: %w", err)
		}
		qrImg := qr.Image(qrSize)
		dc.DrawImageAnchored(qrImg, cardWidth/2, int(y)+20+qrSize/2, 0.5, 0.5)

		dc.SetFontFace(truetype.NewFace(f.regular, &truetype.Options{Size: 18}))
		dc.DrawStringAnchored("Escanea para enviar tu comprobante por WhatsApp", cardWidth/2, y+qrSize+50, 0.5, 0.5)
	} else {
		dc.SetFontFace(truetype.NewFace(f.regular, &truetype.Options{Size: 20}))
		for i, step := range ins.Steps {
			dc.DrawStringWrapped(fmt.Sprintf("%d. %s", i+1, step), cardMargin, y+20+float64(i)*60, 0, 0, cardWidth-2*cardMargin, 1.3, gg.AlignLeft)
		}
	}

	if err := png.Encode(w, dc.Image()); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

func destinationLines(ins Instructions) []string {
	switch {
	case ins.WalletNumber != "":
		return []string{"Envía a: " + ins.WalletNumber}
	case ins.Bank != nil:
		return []string{
			ins.Bank.Bank + " - Cuenta Soles",
			ins.Bank.Account,
			"Titular: " + ins.Bank.Holder,
		}
	default:
		return nil
	}
}

// RenderReceipt writes a one-page PDF summary of the order.
func RenderReceipt(w io.Writer, order *checkout.Order, ins Instructions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Orden "+order.OrderNumber), false)
	pdf.AddPage()

	pdf.SetFillColor(238, 187, 186)
	pdf.Rect(0, 0, 210, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(15, 10)
	pdf.CellFormat(180, 10, tr("VALÚ Baby"), "", 1, "L", false, 0, "")

	pdf.SetTextColor(74, 63, 63)
	pdf.SetXY(15, 40)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(180, 8, tr("Orden #"+order.OrderNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(15)
	pdf.CellFormat(180, 6, order.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(180, 7, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	line := func(text string) {
		pdf.SetX(15)
		pdf.CellFormat(180, 5, tr(text), "", 1, "L", false, 0, "")
	}

	section("Información de Contacto")
	line(order.CustomerName)
	line(order.CustomerEmail)
	line(order.CustomerPhone)
	pdf.Ln(3)

	section("Dirección de Envío")
	addr := order.ShippingAddress
	line(addr.Street)
	line(addr.Locality())
	if addr.Region != "" {
		line(addr.Region)
	}
	if addr.Reference != "" {
		line("Ref: " + addr.Reference)
	}
	pdf.Ln(3)

	section(fmt.Sprintf("Productos (%d)", len(order.Items)))
	pdf.SetX(15)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Talla", "B", 0, "C", false, 0, "")
	pdf.CellFormat(20, 7, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Importe", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		pdf.SetX(15)
		pdf.CellFormat(95, 7, tr(truncate(item.Product.Name, 48)), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, tr(item.Size), "", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, types.FormatSoles(item.Price.Mul(decimal.NewFromInt(item.Quantity))), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	totals := [][2]string{
		{"Subtotal", types.FormatSoles(order.Subtotal)},
		{"Envío", types.FormatSoles(order.Shipping)},
		{"Total", types.FormatSoles(order.Total)},
	}
	for i, row := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 12)
		}
		pdf.SetX(15)
		pdf.CellFormat(140, 7, tr(row[0]), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(ins.Title)
	for _, l := range destinationLines(ins) {
		line(l)
	}
	for i, step := range ins.Steps {
		line(fmt.Sprintf("%d. %s", i+1, step))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-3]) + "..."
}
