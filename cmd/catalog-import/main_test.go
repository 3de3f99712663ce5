package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcmexdev/storefront/internal/pkg/config"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

func TestReadProducts(t *testing.T) {
	in := `[{"product_id": 3, "product_name": "Mug", "product_category": "kitchen-ware", "product_image": "mug.png", "product_price": 10.5}]`
	products, err := readProducts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != 3 || products[0].Price.String() != "10.5" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestRunImportsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	data := `[{"product_id": 1, "product_name": "Mug", "product_category": "kitchen-ware", "product_price": "4.99"},
	          {"product_id": 2, "product_name": "Plate", "product_category": "kitchen-ware", "product_price": "7"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := config.Config{Database: config.DatabaseConfig{Path: filepath.Join(dir, "store.db")}}
	n, err := run(context.Background(), cfg, path)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 products imported, got %d (%v)", n, err)
	}

	db, err := sqlitedb.Open(context.Background(), sqlitedb.Config{Path: cfg.Database.Path})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var category string
	if err := db.QueryRow(`SELECT product_category FROM products WHERE product_id = 1`).Scan(&category); err != nil {
		t.Fatalf("query: %v", err)
	}
	if category != "Kitchen Ware" {
		t.Fatalf("expected normalized category, got %q", category)
	}

	if _, err := run(context.Background(), cfg, filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
