package ingredient

import "time"

// DefaultLowStockThreshold applies when a create request carries no threshold.
const DefaultLowStockThreshold = 5

// Ingredient is the authoritative stock record. Stock is only ever mutated
// through the repository's delta primitives so the ledger property holds:
// current stock == sum of all deltas ever applied.
type Ingredient struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Unit              string    `json:"unit"`
	Category          string    `json:"category"`
	CostPerUnit       float64   `json:"cost_per_unit"`
	Stock             float64   `json:"stock"`
	LowStockThreshold float64   `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
}

// StockAdjustment is one applied delta. Every stock mutation leaves exactly
// one of these behind, tagged with its reason (manual, order:<id>, po:<id>).
type StockAdjustment struct {
	ID           string    `json:"id"`
	IngredientID string    `json:"ingredient_id"`
	Delta        float64   `json:"delta"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// StockDelta is one staged mutation inside a multi-key write.
// CostPerUnit, when set, overwrites the ingredient's cost in the same unit
// of work (purchase receipts carry it, order deductions never do).
type StockDelta struct {
	IngredientID string
	Delta        float64
	CostPerUnit  *float64
	Reason       string
}

// Unmatched reports a recipe or purchase line whose ingredient name could
// not be resolved to a stock record. Non-fatal: collected and returned
// alongside the successful result.
type Unmatched struct {
	IngredientName string `json:"ingredient_name"`
	Source         string `json:"source"`
}
