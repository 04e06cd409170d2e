package purchase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rasoi/internal/apperr"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]*PurchaseOrder
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*PurchaseOrder)}
}

var _ Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Create(ctx context.Context, po *PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	po.CreatedAt = time.Now()

	r.orders[po.ID] = clonePO(po)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		out = append(out, clonePO(po))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	po, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("purchase order", id)
	}
	return clonePO(po), nil
}

func (r *InMemoryRepository) CompareAndSetStatus(ctx context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	po, ok := r.orders[id]
	if !ok {
		return false, apperr.NotFound("purchase order", id)
	}
	if po.Status != from {
		return false, nil
	}

	po.Status = to
	if to == StatusReceived {
		now := time.Now()
		po.ReceivedAt = &now
	}
	return true, nil
}

func clonePO(po *PurchaseOrder) *PurchaseOrder {
	dup := *po
	dup.Items = append([]POItem(nil), po.Items...)
	if po.ReceivedAt != nil {
		t := *po.ReceivedAt
		dup.ReceivedAt = &t
	}
	return &dup
}

// --------------------------------------------------
// Suppliers
// --------------------------------------------------

type InMemorySupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*Supplier
}

func NewInMemorySupplierRepository() *InMemorySupplierRepository {
	return &InMemorySupplierRepository{suppliers: make(map[string]*Supplier)}
}

var _ SupplierRepository = (*InMemorySupplierRepository)(nil)

func (r *InMemorySupplierRepository) Create(ctx context.Context, s *Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now()

	dup := *s
	r.suppliers[s.ID] = &dup
	return nil
}

func (r *InMemorySupplierRepository) List(ctx context.Context) ([]*Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		dup := *s
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemorySupplierRepository) GetByID(ctx context.Context, id string) (*Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.suppliers[id]
	if !ok {
		return nil, apperr.NotFound("supplier", id)
	}
	dup := *s
	return &dup, nil
}
