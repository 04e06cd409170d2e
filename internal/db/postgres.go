package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates the ledger tables on startup.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		// -------------------------------
		// INGREDIENTS (the stock ledger)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			unit VARCHAR(50) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			cost_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock DOUBLE PRECISION NOT NULL DEFAULT 0,
			low_stock_threshold DOUBLE PRECISION NOT NULL DEFAULT 5,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Name lookups are case-insensitive; uniqueness must be too.
		`CREATE UNIQUE INDEX IF NOT EXISTS ingredients_name_lower_idx
			ON ingredients (LOWER(name))`,

		`CREATE TABLE IF NOT EXISTS stock_adjustments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			ingredient_id UUID NOT NULL REFERENCES ingredients(id),
			delta DOUBLE PRECISION NOT NULL,
			reason VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// -------------------------------
		// MENU + RECIPES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS menu_recipe_lines (
			id SERIAL PRIMARY KEY,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			ingredient_name VARCHAR(255) NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			unit VARCHAR(50) NOT NULL DEFAULT ''
		)`,

		// -------------------------------
		// ORDERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			status VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id),
			qty INT NOT NULL
		)`,

		// -------------------------------
		// SUPPLIERS + PURCHASE ORDERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS suppliers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS purchase_orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			supplier_id UUID NOT NULL REFERENCES suppliers(id),
			status VARCHAR(20) NOT NULL DEFAULT 'OPEN',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			received_at TIMESTAMPTZ NULL
		)`,

		`CREATE TABLE IF NOT EXISTS purchase_order_items (
			id SERIAL PRIMARY KEY,
			purchase_order_id UUID NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
			ingredient_id UUID NULL REFERENCES ingredients(id),
			ingredient_name VARCHAR(255) NOT NULL DEFAULT '',
			qty DOUBLE PRECISION NOT NULL,
			unit VARCHAR(50) NOT NULL DEFAULT '',
			price_per_unit DOUBLE PRECISION NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("Schema initialized")
	return nil
}
