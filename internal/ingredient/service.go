package ingredient

import (
	"context"
	"strings"

	"rasoi/internal/apperr"
	"rasoi/internal/metrics"
)

type Service struct {
	repo    Repository
	metrics *metrics.LedgerMetrics
}

func NewService(repo Repository, m *metrics.LedgerMetrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// --------------------------------------------------
// Create ingredient
// --------------------------------------------------
func (s *Service) Create(
	ctx context.Context,
	name string,
	unit string,
	category string,
	costPerUnit float64,
	lowStockThreshold *float64,
) (*Ingredient, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("ingredient name is required")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, apperr.Validationf("ingredient unit is required")
	}
	if costPerUnit < 0 {
		return nil, apperr.Validationf("cost per unit cannot be negative")
	}

	threshold := float64(DefaultLowStockThreshold)
	if lowStockThreshold != nil {
		if *lowStockThreshold < 0 {
			return nil, apperr.Validationf("low stock threshold cannot be negative")
		}
		threshold = *lowStockThreshold
	}

	ing := &Ingredient{
		Name:              name,
		Unit:              unit,
		Category:          category,
		CostPerUnit:       costPerUnit,
		LowStockThreshold: threshold,
	}

	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) List(ctx context.Context) ([]*Ingredient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Ingredient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByName(ctx context.Context, name string) (*Ingredient, error) {
	return s.repo.FindByName(ctx, name)
}

// --------------------------------------------------
// Full-field update (never touches stock)
// --------------------------------------------------
func (s *Service) Update(
	ctx context.Context,
	id string,
	name string,
	unit string,
	category string,
	costPerUnit float64,
	lowStockThreshold float64,
) (*Ingredient, error) {

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("ingredient name is required")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, apperr.Validationf("ingredient unit is required")
	}
	if costPerUnit < 0 {
		return nil, apperr.Validationf("cost per unit cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, apperr.Validationf("low stock threshold cannot be negative")
	}

	existing.Name = strings.TrimSpace(name)
	existing.Unit = unit
	existing.Category = category
	existing.CostPerUnit = costPerUnit
	existing.LowStockThreshold = lowStockThreshold

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// --------------------------------------------------
// Manual stock adjustment
// --------------------------------------------------
func (s *Service) Adjust(ctx context.Context, id string, delta float64, reason string) (*Ingredient, error) {
	if delta == 0 {
		return nil, apperr.Validationf("delta cannot be zero")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validationf("adjustment reason is required")
	}

	ing, err := s.repo.AdjustStock(ctx, id, delta, "manual: "+reason)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.StockAdjustments.Inc()
	}
	return ing, nil
}

func (s *Service) Adjustments(ctx context.Context, ingredientID string) ([]*StockAdjustment, error) {
	if ingredientID != "" {
		if _, err := s.repo.GetByID(ctx, ingredientID); err != nil {
			return nil, err
		}
	}
	return s.repo.ListAdjustments(ctx, ingredientID)
}
