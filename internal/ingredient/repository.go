package ingredient

import "context"

// Repository defines all storage operations for the stock ledger.
//
// AdjustStock and ApplyDeltas are the only paths that may change Stock.
// Both are atomic: concurrent callers never lose updates, and ApplyDeltas
// applies all of its deltas or none of them.
type Repository interface {
	Create(ctx context.Context, ing *Ingredient) error
	List(ctx context.Context) ([]*Ingredient, error)
	GetByID(ctx context.Context, id string) (*Ingredient, error)

	// Case-insensitive exact match on name.
	FindByName(ctx context.Context, name string) (*Ingredient, error)

	// Full-field update (name, unit, category, cost, threshold).
	// Never touches Stock.
	Update(ctx context.Context, ing *Ingredient) error

	// Atomically applies stock += delta and records the adjustment.
	AdjustStock(ctx context.Context, id string, delta float64, reason string) (*Ingredient, error)

	// Atomically applies every delta (stock and optional cost) as a single
	// unit of work. A missing target fails the whole batch with no effect.
	ApplyDeltas(ctx context.Context, deltas []StockDelta) error

	ListAdjustments(ctx context.Context, ingredientID string) ([]*StockAdjustment, error)
}
