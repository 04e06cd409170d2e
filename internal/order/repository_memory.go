package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rasoi/internal/apperr"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*Order)}
}

var _ Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = time.Now()

	dup := *o
	dup.Items = append([]OrderItem(nil), o.Items...)
	r.orders[o.ID] = &dup
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		dup := *o
		dup.Items = append([]OrderItem(nil), o.Items...)
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	dup := *o
	dup.Items = append([]OrderItem(nil), o.Items...)
	return &dup, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return apperr.NotFound("order", id)
	}
	delete(r.orders, id)
	return nil
}
