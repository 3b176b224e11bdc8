// Command valuctl drives the storefront API from a terminal: browse the
// catalog, keep a local cart, check out and manage orders.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/valubaby/valu-store/internal/client"
	"github.com/valubaby/valu-store/internal/logging"
)

type config struct {
	APIURL     string        `env:"VALU_API_URL" envDefault:"http://127.0.0.1:3001/api"`
	AdminToken string        `env:"VALU_ADMIN_TOKEN"`
	Home       string        `env:"VALU_HOME"`
	CacheTTL   time.Duration `env:"VALU_CACHE_TTL" envDefault:"1h"`
}

type app struct {
	api   *client.Client
	store client.Store
	out   io.Writer
}

var errUsage = errors.New("usage")

const usage = `Usage: valuctl <command> [arguments]

Catalog:
  products [-category NAME]        list products
  product ID                       show one product

Cart:
  cart list                        show the local cart
  cart add ID SIZE [QTY]           add a product
  cart set ID SIZE QTY             change a quantity (0 removes)
  cart remove ID SIZE              remove a line
  cart clear                       empty the cart
  cart validate                    check the cart against the store

Orders:
  checkout -name -email -phone -district -street [flags]
  order NUMBER                     show an order by number
  pending                          show the last submitted order
  receipt ID FILE                  save the PDF receipt
  card ID FILE                     save the payment card PNG

Admin (VALU_ADMIN_TOKEN or "admin login"):
  admin login PASSWORD
  admin orders [-status S] [-limit N]
  admin status ID STATUS
  admin payment ID STATUS [PAYMENT_ID]
  admin stats
`

func main() {
	logging.Setup()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		slog.Error("valuctl failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Home == "" {
		cfg.Home = client.DefaultDir()
	}

	store, err := client.NewFileStore(cfg.Home)
	if err != nil {
		return err
	}

	a := &app{
		api:   client.New(cfg.APIURL, client.WithAdminToken(cfg.AdminToken), client.WithCacheTTL(cfg.CacheTTL)),
		store: store,
		out:   out,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return a.dispatch(ctx, args)
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "product":
		return a.product(ctx, rest)
	case "cart":
		return a.cart(ctx, rest)
	case "checkout":
		return a.checkout(ctx, rest)
	case "order":
		return a.order(ctx, rest)
	case "pending":
		return a.pending()
	case "receipt":
		return a.download(ctx, rest, "receipt.pdf")
	case "card":
		return a.download(ctx, rest, "payment-card.png")
	case "admin":
		return a.admin(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}
