package menu

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rasoi/internal/apperr"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*MenuItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*MenuItem)}
}

var _ Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Create(ctx context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()

	dup := *item
	dup.Recipe = append([]RecipeLine(nil), item.Recipe...)
	r.items[item.ID] = &dup
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*MenuItem, 0, len(r.items))
	for _, item := range r.items {
		dup := *item
		dup.Recipe = append([]RecipeLine(nil), item.Recipe...)
		out = append(out, &dup)
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateRecipe(ctx context.Context, id string, recipe []RecipeLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return apperr.NotFound("menu item", id)
	}
	item.Recipe = append([]RecipeLine(nil), recipe...)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("menu item", id)
	}
	dup := *item
	dup.Recipe = append([]RecipeLine(nil), item.Recipe...)
	return &dup, nil
}
