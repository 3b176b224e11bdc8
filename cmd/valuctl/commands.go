package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/client"
	"github.com/valubaby/valu-store/internal/types"
)

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := newFlagSet("products", a.out)
	category := fs.String("category", "", "filter by category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.api.Products(ctx, *category)
	if err != nil {
		return err
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSIZES")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.Name, p.Category, types.FormatSoles(p.Price), p.Stock, strings.Join(p.Sizes, ","))
	}
	return w.Flush()
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.api.Product(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(a.out, "  %s\n", p.Description)
	fmt.Fprintf(a.out, "  Precio: %s  Stock: %d  Categoría: %s\n", types.FormatSoles(p.Price), p.Stock, p.Category)
	fmt.Fprintf(a.out, "  Tallas: %s\n", strings.Join(p.Sizes, ", "))
	if p.Badge != nil {
		fmt.Fprintf(a.out, "  %s\n", *p.Badge)
	}
	return nil
}

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cart, err := client.LoadCart(a.store)
	if err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.printCart(cart)

	case "add":
		if len(rest) < 2 || len(rest) > 3 {
			return errUsage
		}
		qty := int64(1)
		if len(rest) == 3 {
			if qty, err = parseQuantity(rest[2]); err != nil {
				return err
			}
		}
		p, err := a.api.Product(ctx, rest[0])
		if err != nil {
			return err
		}
		if !slices.Contains(p.Sizes, rest[1]) {
			return fmt.Errorf("size %s not available, choose one of %s", rest[1], strings.Join(p.Sizes, ", "))
		}
		if err := cart.Add(client.Line{ID: p.ID, Name: p.Name, Price: p.Price, Size: rest[1], Quantity: qty, Image: p.FirstImage()}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s agregado al carrito\n", p.Name)
		return nil

	case "set":
		if len(rest) != 3 {
			return errUsage
		}
		qty, err := strconv.ParseInt(rest[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", rest[2])
		}
		if err := cart.UpdateQuantity(rest[0], rest[1], qty); err != nil {
			return err
		}
		return a.printCart(cart)

	case "remove":
		if len(rest) != 2 {
			return errUsage
		}
		if err := cart.Remove(rest[0], rest[1]); err != nil {
			return err
		}
		return a.printCart(cart)

	case "clear":
		return cart.Clear()

	case "validate":
		if len(cart.Items()) == 0 {
			return fmt.Errorf("tu carrito está vacío")
		}
		result, err := a.api.ValidateCart(ctx, cart.CartLines())
		if err != nil {
			return err
		}
		return a.printValidation(result)

	default:
		return fmt.Errorf("unknown cart command %q: %w", sub, errUsage)
	}
}

func (a *app) printCart(cart *client.Cart) error {
	items := cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Tu carrito está vacío")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tQTY\tPRICE")
	for _, l := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", l.ID, l.Name, l.Size, l.Quantity, types.FormatSoles(l.Price))
	}
	totals := cart.Totals()
	fmt.Fprintf(w, "\t\t\t%d\t%s\n", totals.ItemCount, types.FormatSoles(totals.Subtotal))
	return w.Flush()
}

func (a *app) printValidation(result *client.CartValidation) error {
	if result.Success {
		fmt.Fprintf(a.out, "Carrito válido: %d artículos, subtotal %s\n", result.ItemCount, types.FormatSoles(result.Subtotal))
		return nil
	}
	fmt.Fprintln(a.out, "El carrito tiene problemas:")
	for _, e := range result.Errors {
		name := e.ProductName
		if name == "" {
			name = e.ProductID
		}
		fmt.Fprintf(a.out, "  - %s: %s\n", name, e.Message)
	}
	return fmt.Errorf("cart validation failed for %d line(s)", len(result.Errors))
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := newFlagSet("checkout", a.out)
	var (
		name     = fs.String("name", "", "customer full name")
		email    = fs.String("email", "", "customer email")
		phone    = fs.String("phone", "", "customer phone")
		dni      = fs.String("dni", "", "customer DNI")
		region   = fs.String("region", "Lima", "departamento")
		province = fs.String("province", "Lima", "provincia")
		district = fs.String("district", "", "distrito")
		street   = fs.String("street", "", "dirección")
		ref      = fs.String("ref", "", "referencia")
		method   = fs.String("payment", "yape", "yape, plin, transfer or cod")
		shipping = fs.String("shipping", "10", "shipping cost in soles")
		notes    = fs.String("notes", "", "order notes")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cart, err := client.LoadCart(a.store)
	if err != nil {
		return err
	}
	if len(cart.Items()) == 0 {
		return fmt.Errorf("tu carrito está vacío")
	}

	shippingCost, err := decimal.NewFromString(*shipping)
	if err != nil {
		return fmt.Errorf("invalid shipping %q", *shipping)
	}

	result, err := a.api.ValidateCart(ctx, cart.CartLines())
	if err != nil {
		return err
	}
	if !result.Success {
		return a.printValidation(result)
	}

	totals := cart.Totals()
	order, err := a.api.CreateOrder(ctx, client.OrderRequest{
		CustomerName:  *name,
		CustomerEmail: *email,
		CustomerPhone: *phone,
		CustomerDNI:   *dni,
		ShippingAddress: &types.Address{
			Region:    *region,
			Province:  *province,
			District:  *district,
			Street:    *street,
			Reference: *ref,
		},
		Items:         cart.OrderItems(),
		Subtotal:      totals.Subtotal,
		Shipping:      shippingCost,
		Total:         totals.Subtotal.Add(shippingCost),
		PaymentMethod: *method,
		Notes:         *notes,
	})
	if err != nil {
		return err
	}

	if err := client.SavePendingOrder(a.store, order); err != nil {
		return err
	}
	if err := cart.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Pedido #%s creado. Total %s\n\n", order.OrderNumber, types.FormatSoles(order.Total))

	ins, err := a.api.PaymentInstructions(ctx, order.ID)
	if err != nil {
		return err
	}
	a.printInstructions(ins)
	return nil
}

func (a *app) printInstructions(ins *client.PaymentInstructions) {
	fmt.Fprintln(a.out, ins.Title)
	for i, step := range ins.Steps {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, step)
	}
	if ins.Bank != nil {
		fmt.Fprintf(a.out, "  %s: %s\n", ins.Bank.Bank, ins.Bank.Account)
	}
	if ins.WhatsAppURL != "" {
		fmt.Fprintf(a.out, "\nWhatsApp: %s\n", ins.WhatsAppURL)
	}
}

func (a *app) order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	order, err := a.api.OrderByNumber(ctx, args[0])
	if err != nil {
		return err
	}
	a.printOrder(order)
	return nil
}

// pending shows the order saved by the last checkout and forgets it.
func (a *app) pending() error {
	order, err := client.LoadPendingOrder(a.store)
	if err != nil {
		return err
	}
	if order == nil {
		fmt.Fprintln(a.out, "No hay pedidos pendientes")
		return nil
	}
	a.printOrder(order)
	return client.ClearPendingOrder(a.store)
}

func (a *app) printOrder(o *client.Order) {
	fmt.Fprintf(a.out, "Orden #%s (%s)\n", o.OrderNumber, o.ID)
	fmt.Fprintf(a.out, "  Estado: %s  Pago: %s (%s)\n", o.Status, o.PaymentStatus, o.PaymentMethod)
	fmt.Fprintf(a.out, "  Cliente: %s <%s> %s\n", o.CustomerName, o.CustomerEmail, o.CustomerPhone)
	fmt.Fprintf(a.out, "  Envío: %s, %s\n", o.ShippingAddress.Street, o.ShippingAddress.Locality())
	for _, it := range o.Items {
		fmt.Fprintf(a.out, "  %d x %s (%s) %s\n", it.Quantity, it.Product.Name, it.Size, types.FormatSoles(it.Price))
	}
	fmt.Fprintf(a.out, "  Total: %s\n", types.FormatSoles(o.Total))
}

func (a *app) download(ctx context.Context, args []string, document string) error {
	if len(args) != 2 {
		return errUsage
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := a.api.Download(ctx, args[0], document, f); err != nil {
		f.Close()
		os.Remove(args[1])
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Guardado en %s\n", args[1])
	return nil
}

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "login":
		if len(rest) != 1 {
			return errUsage
		}
		token, err := a.api.Login(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "export VALU_ADMIN_TOKEN=%s\n", token)
		return nil

	case "orders":
		fs := newFlagSet("admin orders", a.out)
		status := fs.String("status", "", "filter by status")
		limit := fs.Int("limit", 0, "maximum orders to list")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		orders, err := a.api.ListOrders(ctx, *status, *limit)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tNUMBER\tCUSTOMER\tTOTAL\tSTATUS\tPAYMENT\tCREATED")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.OrderNumber, o.CustomerName, types.FormatSoles(o.Total),
				o.Status, o.PaymentStatus, o.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()

	case "status":
		if len(rest) != 2 {
			return errUsage
		}
		order, err := a.api.UpdateOrderStatus(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Orden #%s: %s\n", order.OrderNumber, order.Status)
		return nil

	case "payment":
		if len(rest) < 2 || len(rest) > 3 {
			return errUsage
		}
		paymentID := ""
		if len(rest) == 3 {
			paymentID = rest[2]
		}
		order, err := a.api.UpdateOrderPayment(ctx, rest[0], rest[1], paymentID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Orden #%s: pago %s\n", order.OrderNumber, order.PaymentStatus)
		return nil

	case "stats":
		stats, err := a.api.OrderStats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Pendientes: %d\nConfirmadas: %d\nIngresos: %s\n",
			stats.PendingOrders, stats.ConfirmedOrders, types.FormatSoles(stats.Revenue))
		return nil

	default:
		return fmt.Errorf("unknown admin command %q: %w", sub, errUsage)
	}
}

func parseQuantity(s string) (int64, error) {
	qty, err := strconv.ParseInt(s, 10, 64)
	if err != nil || qty < 1 {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return qty, nil
}
