package order

import (
	"time"

	"rasoi/internal/ingredient"
)

const StatusPlaced = "placed"

// Order is created once at placement and never mutated afterwards.
// Its ingredient consumption is recorded in the stock-adjustment trail
// under reason "order:<id>" at the moment it is placed.
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	MenuID string `json:"menu_id"`
	Qty    int    `json:"qty"`
}

// PlaceResult is the outcome of a successful placement: the created order
// plus every recipe line whose ingredient had no stock record.
type PlaceResult struct {
	Order     *Order                 `json:"order"`
	Anomalies []ingredient.Unmatched `json:"anomalies"`
}
