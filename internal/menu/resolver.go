package menu

import "context"

// Resolver expands a menu item plus an ordered quantity into per-ingredient
// consumption amounts. This is the only recipe read path order fulfillment
// and purchase reporting are allowed to use.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns one Consumption per recipe line, scaled by orderedQty.
// A missing menu item is a NotFoundError; an item without recipe lines
// resolves to an empty slice.
func (r *Resolver) Resolve(ctx context.Context, menuID string, orderedQty int) ([]Consumption, error) {
	item, err := r.repo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	out := make([]Consumption, 0, len(item.Recipe))
	for _, line := range item.Recipe {
		out = append(out, Consumption{
			IngredientName: line.IngredientName,
			Amount:         line.Quantity * float64(orderedQty),
			Unit:           line.Unit,
		})
	}
	return out, nil
}
