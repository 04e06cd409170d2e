package purchase

import (
	"context"
	"sync"
	"testing"

	"rasoi/internal/apperr"
	"rasoi/internal/ingredient"
)

type purchaseFixture struct {
	service     *Service
	ingredients *ingredient.InMemoryRepository
	supplierID  string
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	ingredients := ingredient.NewInMemoryRepository()
	service := NewService(NewInMemoryRepository(), NewInMemorySupplierRepository(), ingredients, nil)

	sup, err := service.CreateSupplier(context.Background(), "Sharma Traders", "9876500000")
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	return &purchaseFixture{service: service, ingredients: ingredients, supplierID: sup.ID}
}

func (f *purchaseFixture) seedIngredient(t *testing.T, name, unit string, stock float64) *ingredient.Ingredient {
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

func floatPtr(v float64) *float64 { return &v }

func TestReceiveIncrementsStockAndUpdatesCost(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	onion := f.seedIngredient(t, "Onion", "grams", 50)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: onion.ID, Qty: 200, Unit: "grams", PricePerUnit: floatPtr(2)},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}
	if po.Status != StatusOpen {
		t.Fatalf("expected status %q, got %q", StatusOpen, po.Status)
	}

	res, err := f.service.Receive(ctx, po.ID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if res.PurchaseOrder.Status != StatusReceived {
		t.Fatalf("expected status %q, got %q", StatusReceived, res.PurchaseOrder.Status)
	}
	if res.PurchaseOrder.ReceivedAt == nil {
		t.Fatal("expected received timestamp to be set")
	}

	got, err := f.ingredients.GetByID(ctx, onion.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 250 {
		t.Fatalf("expected stock 250, got %v", got.Stock)
	}
	if got.CostPerUnit != 2 {
		t.Fatalf("expected cost per unit 2, got %v", got.CostPerUnit)
	}
}

func TestReceiveTwiceAppliesStockOnce(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	garlic := f.seedIngredient(t, "Garlic", "grams", 10)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: garlic.ID, Qty: 100, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	first, err := f.service.Receive(ctx, po.ID)
	if err != nil {
		t.Fatalf("first receive: %v", err)
	}
	second, err := f.service.Receive(ctx, po.ID)
	if err != nil {
		t.Fatalf("second receive: %v", err)
	}

	if !first.PurchaseOrder.ReceivedAt.Equal(*second.PurchaseOrder.ReceivedAt) {
		t.Fatalf("expected receive to keep the original timestamp, got %v then %v",
			first.PurchaseOrder.ReceivedAt, second.PurchaseOrder.ReceivedAt)
	}

	got, err := f.ingredients.GetByID(ctx, garlic.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 110 {
		t.Fatalf("expected stock 110 after double receive, got %v", got.Stock)
	}
}

func TestConcurrentReceiveAppliesStockOnce(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	ginger := f.seedIngredient(t, "Ginger", "grams", 0)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: ginger.ID, Qty: 500, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.Receive(ctx, po.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("receive: %v", err)
	}

	got, err := f.ingredients.GetByID(ctx, ginger.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 500 {
		t.Fatalf("expected stock 500 after %d concurrent receives, got %v", workers, got.Stock)
	}
}

func TestReceiveResolvesByNameCaseInsensitive(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	paneer := f.seedIngredient(t, "Paneer", "grams", 0)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientName: "paneer", Qty: 300, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	if _, err := f.service.Receive(ctx, po.ID); err != nil {
		t.Fatalf("receive: %v", err)
	}

	got, err := f.ingredients.GetByID(ctx, paneer.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 300 {
		t.Fatalf("expected stock 300, got %v", got.Stock)
	}
}

func TestReceiveUnresolvedLineIsAnomalyNotFailure(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	salt := f.seedIngredient(t, "Salt", "grams", 100)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: salt.ID, Qty: 400, Unit: "grams"},
		{IngredientName: "Saffron", Qty: 2, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	res, err := f.service.Receive(ctx, po.ID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(res.Anomalies) != 1 {
		t.Fatalf("expected one anomaly, got %d", len(res.Anomalies))
	}
	if res.Anomalies[0].IngredientName != "Saffron" || res.Anomalies[0].Source != "purchase" {
		t.Fatalf("unexpected anomaly: %+v", res.Anomalies[0])
	}
	if res.PurchaseOrder.Status != StatusReceived {
		t.Fatalf("expected status %q, got %q", StatusReceived, res.PurchaseOrder.Status)
	}

	got, err := f.ingredients.GetByID(ctx, salt.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 500 {
		t.Fatalf("expected stock 500, got %v", got.Stock)
	}
}

func TestCancelOpenOrderIsTerminal(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	jeera := f.seedIngredient(t, "Jeera", "grams", 20)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: jeera.ID, Qty: 100, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	cancelled, err := f.service.Cancel(ctx, po.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected status %q, got %q", StatusCancelled, cancelled.Status)
	}

	// Cancelling again is an idempotent no-op.
	again, err := f.service.Cancel(ctx, po.ID)
	if err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	if again.Status != StatusCancelled {
		t.Fatalf("expected status %q, got %q", StatusCancelled, again.Status)
	}

	// A cancelled order can never be received.
	if _, err := f.service.Receive(ctx, po.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error receiving cancelled order, got %v", err)
	}

	got, err := f.ingredients.GetByID(ctx, jeera.ID)
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	if got.Stock != 20 {
		t.Fatalf("expected stock untouched at 20, got %v", got.Stock)
	}
}

func TestCancelReceivedOrderFails(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	haldi := f.seedIngredient(t, "Haldi", "grams", 0)

	po, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: haldi.ID, Qty: 50, Unit: "grams"},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}
	if _, err := f.service.Receive(ctx, po.ID); err != nil {
		t.Fatalf("receive: %v", err)
	}

	if _, err := f.service.Cancel(ctx, po.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error cancelling received order, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	if _, err := f.service.Create(ctx, "", []POItem{{IngredientName: "Salt", Qty: 1}}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing supplier, got %v", err)
	}
	if _, err := f.service.Create(ctx, "no-such-supplier", []POItem{{IngredientName: "Salt", Qty: 1}}); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown supplier, got %v", err)
	}
	if _, err := f.service.Create(ctx, f.supplierID, nil); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}
	if _, err := f.service.Create(ctx, f.supplierID, []POItem{{Qty: 1}}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing ingredient reference, got %v", err)
	}
	if _, err := f.service.Create(ctx, f.supplierID, []POItem{{IngredientName: "Salt", Qty: 0}}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for qty 0, got %v", err)
	}
	if _, err := f.service.Create(ctx, f.supplierID, []POItem{{IngredientName: "Salt", Qty: 1, PricePerUnit: floatPtr(-1)}}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestListExpandsSupplierAndIngredientNames(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	dhania := f.seedIngredient(t, "Dhania", "grams", 0)

	if _, err := f.service.Create(ctx, f.supplierID, []POItem{
		{IngredientID: dhania.ID, Qty: 80, Unit: "grams"},
	}); err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	orders, err := f.service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	if orders[0].SupplierName != "Sharma Traders" {
		t.Fatalf("expected supplier name expanded, got %q", orders[0].SupplierName)
	}
	if len(orders[0].Items) != 1 || orders[0].Items[0].IngredientName != "Dhania" {
		t.Fatalf("expected ingredient name expanded, got %+v", orders[0].Items)
	}
}
