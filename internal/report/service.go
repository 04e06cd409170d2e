package report

import (
	"context"
	"strings"

	"rasoi/internal/ingredient"
)

// Service is the read-only reporting surface over the stock ledger.
// It never mutates anything.
type Service struct {
	store ingredient.Repository
}

func NewService(store ingredient.Repository) *Service {
	return &Service{store: store}
}

// --------------------------------------------------
// Low stock (boundary inclusive: stock == threshold reports)
// --------------------------------------------------
func (s *Service) LowStock(ctx context.Context) ([]*ingredient.Ingredient, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]*ingredient.Ingredient, 0)
	for _, ing := range items {
		if ing.Stock <= ing.LowStockThreshold {
			low = append(low, ing)
		}
	}
	return low, nil
}

// --------------------------------------------------
// Usage summary
// --------------------------------------------------
// Total historical consumption per ingredient name, aggregated from the
// order-reason entries of the adjustment trail. Deductions are recorded at
// placement, so editing a recipe later never rewrites past usage.
func (s *Service) UsageSummary(ctx context.Context) (map[string]float64, error) {
	adjustments, err := s.store.ListAdjustments(ctx, "")
	if err != nil {
		return nil, err
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, ing := range items {
		names[ing.ID] = ing.Name
	}

	usage := make(map[string]float64)
	for _, adj := range adjustments {
		if !strings.HasPrefix(adj.Reason, "order:") {
			continue
		}
		name, ok := names[adj.IngredientID]
		if !ok {
			// Ingredient deleted since; keep the consumption under its id.
			name = adj.IngredientID
		}
		usage[name] += -adj.Delta
	}
	return usage, nil
}
