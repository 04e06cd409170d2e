package purchase

import (
	"time"

	"rasoi/internal/ingredient"
)

const (
	StatusOpen      = "OPEN"
	StatusReceived  = "RECEIVED"
	StatusCancelled = "CANCELLED"
)

// PurchaseOrder tracks one replenishment request. Created OPEN; RECEIVED
// exactly once by Receive; CANCELLED is terminal and only reachable from
// OPEN.
type PurchaseOrder struct {
	ID         string     `json:"id"`
	SupplierID string     `json:"supplier_id"`
	Items      []POItem   `json:"items"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}

// POItem targets an ingredient either by id or, when no id reference
// exists, by case-insensitive name. PricePerUnit, when present, overwrites
// the ingredient's cost at receipt.
type POItem struct {
	IngredientID   string   `json:"ingredient_id,omitempty"`
	IngredientName string   `json:"ingredient_name,omitempty"`
	Qty            float64  `json:"qty"`
	Unit           string   `json:"unit"`
	PricePerUnit   *float64 `json:"price_per_unit,omitempty"`
}

type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ReceiveResult is the outcome of a receipt: the (possibly unchanged)
// purchase order plus every line whose ingredient could not be resolved.
type ReceiveResult struct {
	PurchaseOrder *PurchaseOrder         `json:"purchase_order"`
	Anomalies     []ingredient.Unmatched `json:"anomalies"`
}

// --------------------------------------------------
// Read-only display expansion for list()
// --------------------------------------------------

type ExpandedItem struct {
	IngredientID   string   `json:"ingredient_id,omitempty"`
	IngredientName string   `json:"ingredient_name"`
	Qty            float64  `json:"qty"`
	Unit           string   `json:"unit"`
	PricePerUnit   *float64 `json:"price_per_unit,omitempty"`
}

type ExpandedPurchaseOrder struct {
	ID           string         `json:"id"`
	SupplierID   string         `json:"supplier_id"`
	SupplierName string         `json:"supplier_name"`
	Items        []ExpandedItem `json:"items"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	ReceivedAt   *time.Time     `json:"received_at,omitempty"`
}
