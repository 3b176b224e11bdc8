package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/types"
)

// ErrNotConfigured is returned by Send when SMTP credentials are missing.
var ErrNotConfigured = errors.New("email service not configured: missing BREVO_SMTP_HOST, BREVO_SMTP_KEY or EMAIL_FROM")

// ErrInvalidHeader is returned by Send when a header value contains a line break.
var ErrInvalidHeader = errors.New("email header contains a line break")

// Config holds the Brevo SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// AdminTo receives new-order alerts. Defaults to From.
	AdminTo string
	// DashboardURL is linked from the admin alert.
	DashboardURL string
}

// SendFunc delivers a raw RFC 5322 message.
type SendFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Service handles email sending via Brevo SMTP
type Service struct {
	cfg  Config
	send SendFunc
}

// NewService creates a new email service configured with Brevo SMTP
func NewService(cfg Config) *Service {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.AdminTo == "" {
		cfg.AdminTo = cfg.From
	}
	return &Service{cfg: cfg, send: sendMail}
}

// WithSender replaces the SMTP transport.
func (s *Service) WithSender(fn SendFunc) *Service {
	s.send = fn
	return s
}

// Configured reports whether Send can reach the provider.
func (s *Service) Configured() bool {
	return s.cfg.Host != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Email represents an email message
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
	ReplyTo string
}

// Send sends an email via Brevo SMTP
func (s *Service) Send(ctx context.Context, email *Email) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	for _, v := range append([]string{email.ReplyTo, email.Subject}, email.To...) {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidHeader, v)
		}
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	if email.ReplyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", email.ReplyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	if email.IsHTML {
		msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	} else {
		msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	}

	msg.WriteString("\r\n")
	msg.WriteString(email.Body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := s.send(ctx, addr, auth, s.cfg.From, email.To, msg.Bytes()); err != nil {
		slog.Error("failed to send email", "error", err, "to", email.To)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent successfully", "to", email.To, "subject", email.Subject)
	return nil
}

// sendMail is smtp.SendMail with the dial and the session bounded by ctx.
func sendMail(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// OrderData contains all the data needed for order emails
type OrderData struct {
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	OrderDate       string
	Items           []OrderItem
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress types.Address
	PaymentMethod   string
	Notes           string
	DashboardURL    string
}

// OrderItem represents a single line in an order email
type OrderItem struct {
	ProductName string
	Size        string
	Quantity    int64
	Price       decimal.Decimal
	Total       decimal.Decimal
}

var funcs = template.FuncMap{
	"soles": types.FormatSoles,
}

var (
	customerOrderTmpl = template.Must(template.New("customer").Funcs(funcs).Parse(customerOrderContentTemplate))
	adminOrderTmpl    = template.Must(template.New("admin").Funcs(funcs).Parse(adminOrderContentTemplate))
)

func customerSubject(data *OrderData) string {
	return fmt.Sprintf("Confirmación de Orden #%s - VALÚ Baby", data.OrderNumber)
}

func adminSubject(data *OrderData) string {
	return fmt.Sprintf("Nueva Venta: %s (#%s)", types.FormatSoles(data.Total), data.OrderNumber)
}

// SendOrderConfirmation sends an order confirmation email to the customer
func (s *Service) SendOrderConfirmation(ctx context.Context, data *OrderData) error {
	html, err := RenderCustomerOrderEmail(data)
	if err != nil {
		return err
	}

	return s.Send(ctx, &Email{
		To:      []string{data.CustomerEmail},
		Subject: customerSubject(data),
		Body:    html,
		IsHTML:  true,
	})
}

// SendOrderNotificationToAdmin sends the new-sale alert to the store inbox
func (s *Service) SendOrderNotificationToAdmin(ctx context.Context, data *OrderData) error {
	alert := *data
	if alert.DashboardURL == "" {
		alert.DashboardURL = s.cfg.DashboardURL
	}

	html, err := RenderAdminOrderEmail(&alert)
	if err != nil {
		return err
	}

	return s.Send(ctx, &Email{
		To:      []string{s.cfg.AdminTo},
		Subject: adminSubject(&alert),
		Body:    html,
		IsHTML:  true,
		ReplyTo: alert.CustomerEmail,
	})
}

// RenderCustomerOrderEmail renders the customer confirmation, wrapped in the base template
func RenderCustomerOrderEmail(data *OrderData) (string, error) {
	var content bytes.Buffer
	if err := customerOrderTmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render customer email content: %w", err)
	}
	return WrapEmailContent(content.String(), customerSubject(data))
}

// RenderAdminOrderEmail renders the admin alert, wrapped in the base template
func RenderAdminOrderEmail(data *OrderData) (string, error) {
	var content bytes.Buffer
	if err := adminOrderTmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render admin email content: %w", err)
	}
	return WrapEmailContent(content.String(), adminSubject(data))
}
