package menu

import "context"

// Repository defines storage operations for menu items and their recipes.
type Repository interface {
	Create(ctx context.Context, item *MenuItem) error
	List(ctx context.Context) ([]*MenuItem, error)
	GetByID(ctx context.Context, id string) (*MenuItem, error)
	UpdateRecipe(ctx context.Context, id string, recipe []RecipeLine) error
}
