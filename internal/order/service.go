package order

import (
	"context"
	"fmt"

	"rasoi/internal/apperr"
	"rasoi/internal/ingredient"
	"rasoi/internal/menu"
	"rasoi/internal/metrics"
)

type Service struct {
	repo     Repository
	resolver *menu.Resolver
	store    ingredient.Repository
	metrics  *metrics.LedgerMetrics
}

func NewService(
	repo Repository,
	resolver *menu.Resolver,
	store ingredient.Repository,
	m *metrics.LedgerMetrics,
) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		store:    store,
		metrics:  m,
	}
}

// --------------------------------------------------
// Place order
// --------------------------------------------------
// Resolves every item's recipe, stages one merged deduction per matched
// ingredient, persists the order, then applies all deductions as a single
// atomic unit. A missing menu item aborts the whole placement with nothing
// persisted; an unmatched ingredient name is reported as an anomaly and
// deducts nothing.
func (s *Service) PlaceOrder(ctx context.Context, items []OrderItem) (*PlaceResult, error) {
	if len(items) == 0 {
		return nil, apperr.Validationf("order must have at least one item")
	}
	for i, item := range items {
		if item.MenuID == "" {
			return nil, apperr.Validationf("item %d: menu id is required", i+1)
		}
		if item.Qty < 1 {
			return nil, apperr.Validationf("item %d: qty must be at least 1", i+1)
		}
	}

	// Resolve everything before persisting anything.
	var consumptions []menu.Consumption
	for _, item := range items {
		resolved, err := s.resolver.Resolve(ctx, item.MenuID, item.Qty)
		if err != nil {
			return nil, err
		}
		consumptions = append(consumptions, resolved...)
	}

	// Match ingredient names and merge deductions per ingredient,
	// keeping first-appearance order.
	staged := make(map[string]*ingredient.StockDelta)
	var stagedOrder []string
	var anomalies []ingredient.Unmatched

	for _, con := range consumptions {
		ing, err := s.store.FindByName(ctx, con.IngredientName)
		if apperr.IsNotFound(err) {
			anomalies = append(anomalies, ingredient.Unmatched{
				IngredientName: con.IngredientName,
				Source:         "order",
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		if d, ok := staged[ing.ID]; ok {
			d.Delta -= con.Amount
		} else {
			staged[ing.ID] = &ingredient.StockDelta{
				IngredientID: ing.ID,
				Delta:        -con.Amount,
			}
			stagedOrder = append(stagedOrder, ing.ID)
		}
	}

	o := &Order{
		Items:  items,
		Status: StatusPlaced,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	deltas := make([]ingredient.StockDelta, 0, len(stagedOrder))
	for _, id := range stagedOrder {
		d := staged[id]
		d.Reason = fmt.Sprintf("order:%s", o.ID)
		deltas = append(deltas, *d)
	}

	if err := s.store.ApplyDeltas(ctx, deltas); err != nil {
		// The deductions applied as one unit or not at all, so one delete
		// removes every trace of the failed placement.
		_ = s.repo.Delete(ctx, o.ID)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
		s.metrics.StockAdjustments.Add(float64(len(deltas)))
		s.metrics.Anomalies.Add(float64(len(anomalies)))
	}

	return &PlaceResult{Order: o, Anomalies: anomalies}, nil
}

func (s *Service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}
