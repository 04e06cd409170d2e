package main

import (
	"log"
	"os"

	"rasoi/internal/db"
	"rasoi/internal/ingredient"
	"rasoi/internal/menu"
	"rasoi/internal/metrics"
	"rasoi/internal/order"
	"rasoi/internal/purchase"
	"rasoi/internal/report"
	"rasoi/internal/router"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("Missing env var: DATABASE_URL")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── METRICS ─────────────────────────
	ledgerMetrics := metrics.NewLedgerMetrics()

	// ───────────────────────── REPOS ─────────────────────────
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)
	purchaseRepo := purchase.NewPostgresRepository(pgDB)
	supplierRepo := purchase.NewPostgresSupplierRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	ingredientService := ingredient.NewService(ingredientRepo, ledgerMetrics)
	menuService := menu.NewService(menuRepo)
	resolver := menu.NewResolver(menuRepo)

	orderService := order.NewService(orderRepo, resolver, ingredientRepo, ledgerMetrics)
	purchaseService := purchase.NewService(purchaseRepo, supplierRepo, ingredientRepo, ledgerMetrics)
	reportService := report.NewService(ingredientRepo)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Handlers{
		Ingredient: ingredient.NewHandler(ingredientService),
		Menu:       menu.NewHandler(menuService),
		Order:      order.NewHandler(orderService),
		Purchase:   purchase.NewHandler(purchaseService),
		Report:     report.NewHandler(reportService),
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
