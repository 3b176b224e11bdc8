// Command seed loads the storefront catalog and, optionally, a batch of fake
// orders for local development.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/valubaby/valu-store/internal/catalog"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/logging"
	"github.com/valubaby/valu-store/internal/types"
	"github.com/valubaby/valu-store/storage"
)

var limaDistricts = []string{
	"Miraflores", "San Isidro", "Surco", "La Molina", "Barranco",
	"San Borja", "Jesús María", "Magdalena del Mar", "Pueblo Libre", "Lince",
}

var demoStatuses = []string{
	checkout.StatusPending, checkout.StatusPending,
	checkout.StatusConfirmed, checkout.StatusPaid, checkout.StatusShipped,
	"DELIVERED", "CANCELLED",
}

var paymentMethods = []string{"yape", "plin", "transfer", "cod"}

func main() {
	logging.Setup()

	defaultPath := os.Getenv("DB_PATH")
	if defaultPath == "" {
		defaultPath = "./db/valu.db"
	}

	dbPath := flag.String("db", defaultPath, "SQLite database path")
	reset := flag.Bool("reset", false, "delete existing orders and products first")
	orders := flag.Int("orders", 0, "number of fake orders to generate")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for fake orders")
	flag.Parse()

	if err := run(context.Background(), *dbPath, *reset, *orders, *seed); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath string, reset bool, orderCount int, seed uint64) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	database, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	store, err := storage.FromDB(database)
	if err != nil {
		database.Close()
		return err
	}
	defer store.Close()

	if reset {
		if err := resetData(ctx, store.DB()); err != nil {
			return err
		}
	}

	products, err := seedCatalog(ctx, catalog.NewService(store))
	if err != nil {
		return err
	}

	if orderCount > 0 {
		faker := gofakeit.New(seed)
		if err := seedOrders(ctx, checkout.NewOrderService(store, nil), faker, products, orderCount); err != nil {
			return err
		}
	}

	slog.Info("seed complete", "products", len(products), "orders", orderCount, "database", dbPath)
	return nil
}

func resetData(ctx context.Context, database *sql.DB) error {
	for _, table := range []string{"order_items", "orders", "products"} {
		if _, err := database.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	slog.Info("cleared existing orders and products")
	return nil
}

func seedCatalog(ctx context.Context, svc *catalog.Service) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0, len(catalogSeed))
	for _, p := range catalogSeed {
		in := catalog.ProductInput{
			Name:        &p.Name,
			Description: &p.Description,
			Images:      []string{p.Image},
			Category:    &p.Category,
			Sizes:       p.Sizes,
			Stock:       &p.Stock,
		}
		price := p.price()
		in.Price = &price
		if p.Badge != "" {
			in.Badge = &p.Badge
		}

		created, err := svc.Create(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		slog.Debug("product created", "id", created.ID, "name", created.Name)
		products = append(products, *created)
	}
	slog.Info("catalog seeded", "count", len(products))
	return products, nil
}

func seedOrders(ctx context.Context, svc *checkout.OrderService, faker *gofakeit.Faker, products []catalog.Product, n int) error {
	shipping := decimal.NewFromInt(10)

	for i := range n {
		in := checkout.CreateOrderInput{
			CustomerName:  faker.Name(),
			CustomerEmail: faker.Email(),
			CustomerPhone: faker.Numerify("9########"),
			ShippingAddress: &types.Address{
				Region:   "Lima",
				Province: "Lima",
				District: faker.RandomString(limaDistricts),
				Street:   faker.Street(),
			},
			Shipping:      shipping,
			PaymentMethod: faker.RandomString(paymentMethods),
		}
		if faker.Bool() {
			in.CustomerDNI = faker.Numerify("########")
		}

		subtotal := decimal.Zero
		for range faker.IntRange(1, 3) {
			p := products[faker.IntRange(0, len(products)-1)]
			qty := int64(faker.IntRange(1, 2))
			in.Items = append(in.Items, checkout.OrderItemInput{
				ProductID: p.ID,
				Quantity:  qty,
				Size:      faker.RandomString(p.Sizes),
				Price:     p.Price,
			})
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(qty)))
		}
		in.Subtotal = subtotal
		in.Total = subtotal.Add(shipping)

		order, err := svc.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("create order %d: %w", i+1, err)
		}

		if status := faker.RandomString(demoStatuses); status != checkout.StatusPending {
			if _, err := svc.UpdateStatus(ctx, order.ID, status); err != nil {
				return fmt.Errorf("update order %s: %w", order.OrderNumber, err)
			}
		}
	}
	slog.Info("fake orders seeded", "count", n)
	return nil
}
