// Command catalog-import loads a JSON array of products into the storefront
// database, inserting new products and updating existing ones.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	catalogsqlite "github.com/jcmexdev/storefront/internal/catalog/adapters/sqlite"
	catalogapp "github.com/jcmexdev/storefront/internal/catalog/app"
	"github.com/jcmexdev/storefront/internal/catalog/domain"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/config"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
)

// cacheNamespace is the key prefix cmd/storefront caches products under.
const cacheNamespace = "storefront"

type productRecord struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category"`
	ProductImage    string          `json:"product_image"`
	ProductPrice    decimal.Decimal `json:"product_price"`
}

func main() {
	file := flag.String("file", "products.json", "JSON array of products to import")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(os.Stderr, telemetry.LoggerOptions{
		Service: "catalog-import",
		Env:     string(cfg.AppEnv),
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n, err := run(ctx, cfg, *file)
	if err != nil {
		slog.Error("catalog import failed", "file", *file, "error", err)
		os.Exit(1)
	}
	slog.Info("catalog imported", "file", *file, "products", n)
}

func run(ctx context.Context, cfg config.Config, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	products, err := readProducts(f)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	db, err := sqlitedb.Open(ctx, sqlitedb.Config{Path: cfg.Database.Path, BusyTimeout: cfg.Database.BusyTimeout})
	if err != nil {
		return 0, err
	}
	defer db.Close()

	productCache := cache.New(ctx, cfg.Redis.Addr, cacheNamespace)
	defer productCache.Close()

	svc := catalogapp.NewService(catalogsqlite.NewProductRepo(db), productCache, cfg.Redis.ProductCacheTTL)
	return svc.Import(ctx, products)
}

func readProducts(r io.Reader) ([]domain.Product, error) {
	var records []productRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(records))
	for i, rec := range records {
		products[i] = domain.Product{
			ID:       rec.ProductID,
			Name:     rec.ProductName,
			Category: rec.ProductCategory,
			Image:    rec.ProductImage,
			Price:    rec.ProductPrice,
		}
	}
	return products, nil
}
