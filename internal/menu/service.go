package menu

import (
	"context"
	"strings"

	"rasoi/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Create menu item
// --------------------------------------------------
func (s *Service) Create(
	ctx context.Context,
	name string,
	category string,
	price float64,
	recipe []RecipeLine,
) (*MenuItem, error) {

	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("menu item name is required")
	}
	if price < 0 {
		return nil, apperr.Validationf("price cannot be negative")
	}

	for i, line := range recipe {
		if strings.TrimSpace(line.IngredientName) == "" {
			return nil, apperr.Validationf("recipe line %d: ingredient name is required", i+1)
		}
		if line.Quantity <= 0 {
			return nil, apperr.Validationf("recipe line %d: quantity must be positive", i+1)
		}
	}

	item := &MenuItem{
		Name:     strings.TrimSpace(name),
		Category: category,
		Price:    price,
		Recipe:   recipe,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// --------------------------------------------------
// Replace recipe
// --------------------------------------------------
func (s *Service) UpdateRecipe(ctx context.Context, id string, recipe []RecipeLine) (*MenuItem, error) {
	for i, line := range recipe {
		if strings.TrimSpace(line.IngredientName) == "" {
			return nil, apperr.Validationf("recipe line %d: ingredient name is required", i+1)
		}
		if line.Quantity <= 0 {
			return nil, apperr.Validationf("recipe line %d: quantity must be positive", i+1)
		}
	}

	if err := s.repo.UpdateRecipe(ctx, id, recipe); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}
