package menu

import "time"

// MenuItem owns its recipe. Recipe lines are immutable once the item is
// saved; editing a recipe later never rewrites consumption already recorded
// in the stock ledger.
type MenuItem struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  string       `json:"category"`
	Price     float64      `json:"price"`
	Recipe    []RecipeLine `json:"recipe"`
	CreatedAt time.Time    `json:"created_at"`
}

// RecipeLine is one ingredient-quantity pair, per single unit of the item.
// Ingredients are referenced by name and resolved case-insensitively at
// order time.
type RecipeLine struct {
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}

// Consumption is one resolved recipe line scaled by ordered quantity.
type Consumption struct {
	IngredientName string  `json:"ingredient_name"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
}
