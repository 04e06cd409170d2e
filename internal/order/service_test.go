package order

import (
	"context"
	"testing"

	"rasoi/internal/apperr"
	"rasoi/internal/ingredient"
	"rasoi/internal/menu"
)

type orderFixture struct {
	service     *Service
	orders      *InMemoryRepository
	ingredients *ingredient.InMemoryRepository
	menuSvc     *menu.Service
}

func newOrderFixture() *orderFixture {
	ingredients := ingredient.NewInMemoryRepository()
	menuRepo := menu.NewInMemoryRepository()
	orders := NewInMemoryRepository()

	return &orderFixture{
		service:     NewService(orders, menu.NewResolver(menuRepo), ingredients, nil),
		orders:      orders,
		ingredients: ingredients,
		menuSvc:     menu.NewService(menuRepo),
	}
}

func (f *orderFixture) seedIngredient(t *testing.T, name, unit string, stock float64) *ingredient.Ingredient {
	t.Helper()
	ing := &ingredient.Ingredient{Name: name, Unit: unit, CostPerUnit: 1}
	if err := f.ingredients.Create(context.Background(), ing); err != nil {
		t.Fatalf("seed ingredient %s: %v", name, err)
	}
	if stock != 0 {
		if _, err := f.ingredients.AdjustStock(context.Background(), ing.ID, stock, "manual: seed"); err != nil {
			t.Fatalf("seed stock %s: %v", name, err)
		}
	}
	return ing
}

func TestPlaceOrderDeductsScaledRecipe(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	tomato := f.seedIngredient(t, "Tomato", "grams", 100)
	soup, err := f.menuSvc.Create(ctx, "Soup", "mains", 90, []menu.RecipeLine{
		{IngredientName: "Tomato", Quantity: 50, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}

	res, err := f.service.PlaceOrder(ctx, []OrderItem{{MenuID: soup.ID, Qty: 2}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if res.Order.Status != StatusPlaced {
		t.Fatalf("expected status %q, got %q", StatusPlaced, res.Order.Status)
	}
	if len(res.Anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %v", res.Anomalies)
	}

	got, err := f.ingredients.GetByID(ctx, tomato.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("expected stock 0 after deducting 2x50, got %v", got.Stock)
	}
}

func TestPlaceOrderMergesDeductionsAcrossItems(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	cheese := f.seedIngredient(t, "Cheese", "grams", 500)
	pizza, err := f.menuSvc.Create(ctx, "Pizza", "mains", 200, []menu.RecipeLine{
		{IngredientName: "Cheese", Quantity: 80, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create pizza: %v", err)
	}
	sandwich, err := f.menuSvc.Create(ctx, "Sandwich", "snacks", 60, []menu.RecipeLine{
		{IngredientName: "Cheese", Quantity: 20, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create sandwich: %v", err)
	}

	_, err = f.service.PlaceOrder(ctx, []OrderItem{
		{MenuID: pizza.ID, Qty: 2},
		{MenuID: sandwich.ID, Qty: 3},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	got, err := f.ingredients.GetByID(ctx, cheese.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 500-160-60 {
		t.Fatalf("expected stock 280, got %v", got.Stock)
	}

	// The merged deduction leaves a single trail entry for the order.
	trail, err := f.ingredients.ListAdjustments(ctx, cheese.ID)
	if err != nil {
		t.Fatalf("list adjustments: %v", err)
	}
	orderEntries := 0
	for _, adj := range trail {
		if adj.Reason != "manual: seed" {
			orderEntries++
			if adj.Delta != -220 {
				t.Fatalf("expected merged delta -220, got %v", adj.Delta)
			}
		}
	}
	if orderEntries != 1 {
		t.Fatalf("expected one order trail entry, got %d", orderEntries)
	}
}

func TestPlaceOrderUnmatchedIngredientIsAnomalyNotFailure(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	flour := f.seedIngredient(t, "Flour", "grams", 1000)
	naan, err := f.menuSvc.Create(ctx, "Truffle Naan", "mains", 300, []menu.RecipeLine{
		{IngredientName: "Flour", Quantity: 100, Unit: "grams"},
		{IngredientName: "Truffle Oil", Quantity: 5, Unit: "ml"},
	})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}

	res, err := f.service.PlaceOrder(ctx, []OrderItem{{MenuID: naan.ID, Qty: 1}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if len(res.Anomalies) != 1 {
		t.Fatalf("expected one anomaly, got %d", len(res.Anomalies))
	}
	if res.Anomalies[0].IngredientName != "Truffle Oil" || res.Anomalies[0].Source != "order" {
		t.Fatalf("unexpected anomaly: %+v", res.Anomalies[0])
	}

	// The matched line still deducts; the unmatched one deducts nothing.
	got, err := f.ingredients.GetByID(ctx, flour.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 900 {
		t.Fatalf("expected stock 900, got %v", got.Stock)
	}

	if _, err := f.orders.GetByID(ctx, res.Order.ID); err != nil {
		t.Fatalf("expected order persisted despite anomaly: %v", err)
	}
}

func TestPlaceOrderMissingMenuItemAbortsEverything(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	rice := f.seedIngredient(t, "Rice", "grams", 400)
	biryani, err := f.menuSvc.Create(ctx, "Biryani", "mains", 250, []menu.RecipeLine{
		{IngredientName: "Rice", Quantity: 150, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}

	_, err = f.service.PlaceOrder(ctx, []OrderItem{
		{MenuID: biryani.ID, Qty: 1},
		{MenuID: "no-such-menu", Qty: 1},
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, err := f.ingredients.GetByID(ctx, rice.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 400 {
		t.Fatalf("expected stock untouched at 400, got %v", got.Stock)
	}

	orders, err := f.orders.List(ctx)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders persisted, got %d", len(orders))
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	if _, err := f.service.PlaceOrder(ctx, nil); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for empty order, got %v", err)
	}
	if _, err := f.service.PlaceOrder(ctx, []OrderItem{{MenuID: "", Qty: 1}}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing menu id, got %v", err)
	}
	if _, err := f.service.PlaceOrder(ctx, []OrderItem{{MenuID: "x", Qty: 0}}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for qty 0, got %v", err)
	}
}

func TestPlaceOrderStockMayGoNegative(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	milk := f.seedIngredient(t, "Milk", "liters", 1)
	chai, err := f.menuSvc.Create(ctx, "Chai", "drinks", 30, []menu.RecipeLine{
		{IngredientName: "Milk", Quantity: 0.25, Unit: "liters"},
	})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}

	if _, err := f.service.PlaceOrder(ctx, []OrderItem{{MenuID: chai.ID, Qty: 8}}); err != nil {
		t.Fatalf("place order: %v", err)
	}

	got, err := f.ingredients.GetByID(ctx, milk.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 1-8*0.25 {
		t.Fatalf("expected stock -1, got %v", got.Stock)
	}
}
