package ingredient

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rasoi/internal/apperr"
)

// InMemoryRepository keeps the whole ledger behind one mutex, which gives
// AdjustStock and ApplyDeltas their atomicity for free. Used by tests and
// as a reference for what the postgres implementation must guarantee.
type InMemoryRepository struct {
	mu          sync.Mutex
	items       map[string]*Ingredient // by id
	byName      map[string]string      // lowercased name -> id
	adjustments []*StockAdjustment
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:  make(map[string]*Ingredient),
		byName: make(map[string]string),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Create(ctx context.Context, ing *Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(ing.Name)
	if _, exists := r.byName[key]; exists {
		return apperr.Validationf("ingredient %q already exists", ing.Name)
	}

	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	ing.CreatedAt = time.Now()

	dup := *ing
	r.items[ing.ID] = &dup
	r.byName[key] = ing.ID
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Ingredient, 0, len(r.items))
	for _, ing := range r.items {
		dup := *ing
		out = append(out, &dup)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *InMemoryRepository) FindByName(ctx context.Context, name string) (*Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, apperr.NotFound("ingredient", name)
	}
	return r.getLocked(id)
}

func (r *InMemoryRepository) Update(ctx context.Context, ing *Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[ing.ID]
	if !ok {
		return apperr.NotFound("ingredient", ing.ID)
	}

	newKey := strings.ToLower(ing.Name)
	oldKey := strings.ToLower(existing.Name)
	if newKey != oldKey {
		if _, taken := r.byName[newKey]; taken {
			return apperr.Validationf("ingredient %q already exists", ing.Name)
		}
		delete(r.byName, oldKey)
		r.byName[newKey] = ing.ID
	}

	existing.Name = ing.Name
	existing.Unit = ing.Unit
	existing.Category = ing.Category
	existing.CostPerUnit = ing.CostPerUnit
	existing.LowStockThreshold = ing.LowStockThreshold
	return nil
}

func (r *InMemoryRepository) AdjustStock(ctx context.Context, id string, delta float64, reason string) (*Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("ingredient", id)
	}

	existing.Stock += delta
	r.recordLocked(id, delta, reason)

	dup := *existing
	return &dup, nil
}

func (r *InMemoryRepository) ApplyDeltas(ctx context.Context, deltas []StockDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Verify every target before touching any of them.
	for _, d := range deltas {
		if _, ok := r.items[d.IngredientID]; !ok {
			return apperr.NotFound("ingredient", d.IngredientID)
		}
	}

	for _, d := range deltas {
		ing := r.items[d.IngredientID]
		ing.Stock += d.Delta
		if d.CostPerUnit != nil {
			ing.CostPerUnit = *d.CostPerUnit
		}
		r.recordLocked(d.IngredientID, d.Delta, d.Reason)
	}
	return nil
}

func (r *InMemoryRepository) ListAdjustments(ctx context.Context, ingredientID string) ([]*StockAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*StockAdjustment
	for _, adj := range r.adjustments {
		if ingredientID == "" || adj.IngredientID == ingredientID {
			dup := *adj
			out = append(out, &dup)
		}
	}
	return out, nil
}

// --------------------------------------------------
// Internals (callers hold r.mu)
// --------------------------------------------------

func (r *InMemoryRepository) getLocked(id string) (*Ingredient, error) {
	ing, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("ingredient", id)
	}
	dup := *ing
	return &dup, nil
}

func (r *InMemoryRepository) recordLocked(id string, delta float64, reason string) {
	r.adjustments = append(r.adjustments, &StockAdjustment{
		ID:           uuid.New().String(),
		IngredientID: id,
		Delta:        delta,
		Reason:       reason,
		CreatedAt:    time.Now(),
	})
}
