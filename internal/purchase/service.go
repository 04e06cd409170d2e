package purchase

import (
	"context"
	"fmt"
	"strings"

	"rasoi/internal/apperr"
	"rasoi/internal/ingredient"
	"rasoi/internal/metrics"
)

type Service struct {
	repo      Repository
	suppliers SupplierRepository
	store     ingredient.Repository
	metrics   *metrics.LedgerMetrics
}

func NewService(
	repo Repository,
	suppliers SupplierRepository,
	store ingredient.Repository,
	m *metrics.LedgerMetrics,
) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		store:     store,
		metrics:   m,
	}
}

// --------------------------------------------------
// Create purchase order (OPEN)
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, supplierID string, items []POItem) (*PurchaseOrder, error) {
	if supplierID == "" {
		return nil, apperr.Validationf("supplier id is required")
	}
	if _, err := s.suppliers.GetByID(ctx, supplierID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.Validationf("purchase order must have at least one item")
	}
	for i, item := range items {
		if item.IngredientID == "" && strings.TrimSpace(item.IngredientName) == "" {
			return nil, apperr.Validationf("item %d: ingredient id or name is required", i+1)
		}
		if item.Qty <= 0 {
			return nil, apperr.Validationf("item %d: qty must be positive", i+1)
		}
		if item.PricePerUnit != nil && *item.PricePerUnit < 0 {
			return nil, apperr.Validationf("item %d: price per unit cannot be negative", i+1)
		}
	}

	po := &PurchaseOrder{
		SupplierID: supplierID,
		Items:      items,
		Status:     StatusOpen,
	}
	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// --------------------------------------------------
// Receive (idempotent, exactly-once stock application)
// --------------------------------------------------
// A RECEIVED order is returned unchanged with no stock mutation. Otherwise
// every line is resolved (by id, else by case-insensitive name; unresolved
// lines become anomalies and are skipped), the OPEN->RECEIVED transition is
// claimed with a compare-and-set, and only the winner applies the stock
// increments and cost updates, as one atomic unit.
func (s *Service) Receive(ctx context.Context, id string) (*ReceiveResult, error) {
	po, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if po.Status == StatusReceived {
		return &ReceiveResult{PurchaseOrder: po}, nil
	}
	if po.Status == StatusCancelled {
		return nil, apperr.Validationf("purchase order %s is cancelled", id)
	}

	deltas, anomalies, err := s.resolveItems(ctx, po)
	if err != nil {
		return nil, err
	}

	won, err := s.repo.CompareAndSetStatus(ctx, id, StatusOpen, StatusReceived)
	if err != nil {
		return nil, err
	}
	if !won {
		// A concurrent receive claimed the transition; hand back whatever
		// state it produced without touching stock.
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == StatusCancelled {
			return nil, apperr.Validationf("purchase order %s is cancelled", id)
		}
		return &ReceiveResult{PurchaseOrder: current}, nil
	}

	if err := s.store.ApplyDeltas(ctx, deltas); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PurchasesReceived.Inc()
		s.metrics.StockAdjustments.Add(float64(len(deltas)))
		s.metrics.Anomalies.Add(float64(len(anomalies)))
	}

	received, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReceiveResult{PurchaseOrder: received, Anomalies: anomalies}, nil
}

func (s *Service) resolveItems(ctx context.Context, po *PurchaseOrder) ([]ingredient.StockDelta, []ingredient.Unmatched, error) {
	reason := fmt.Sprintf("po:%s", po.ID)

	var deltas []ingredient.StockDelta
	var anomalies []ingredient.Unmatched
	for _, item := range po.Items {
		var ing *ingredient.Ingredient
		var err error
		if item.IngredientID != "" {
			ing, err = s.store.GetByID(ctx, item.IngredientID)
		} else {
			ing, err = s.store.FindByName(ctx, item.IngredientName)
		}
		if apperr.IsNotFound(err) {
			name := item.IngredientName
			if name == "" {
				name = item.IngredientID
			}
			anomalies = append(anomalies, ingredient.Unmatched{
				IngredientName: name,
				Source:         "purchase",
			})
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		deltas = append(deltas, ingredient.StockDelta{
			IngredientID: ing.ID,
			Delta:        item.Qty,
			CostPerUnit:  item.PricePerUnit,
			Reason:       reason,
		})
	}
	return deltas, anomalies, nil
}

// --------------------------------------------------
// Cancel (terminal, only from OPEN)
// --------------------------------------------------
func (s *Service) Cancel(ctx context.Context, id string) (*PurchaseOrder, error) {
	won, err := s.repo.CompareAndSetStatus(ctx, id, StatusOpen, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !won {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == StatusCancelled {
			return current, nil
		}
		return nil, apperr.Validationf("purchase order %s is %s and cannot be cancelled", id, strings.ToLower(current.Status))
	}
	return s.repo.GetByID(ctx, id)
}

// --------------------------------------------------
// List with supplier / ingredient references expanded
// --------------------------------------------------
func (s *Service) List(ctx context.Context) ([]*ExpandedPurchaseOrder, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	supplierNames := make(map[string]string)
	if suppliers, err := s.suppliers.List(ctx); err == nil {
		for _, sup := range suppliers {
			supplierNames[sup.ID] = sup.Name
		}
	}

	out := make([]*ExpandedPurchaseOrder, 0, len(orders))
	for _, po := range orders {
		expanded := &ExpandedPurchaseOrder{
			ID:           po.ID,
			SupplierID:   po.SupplierID,
			SupplierName: supplierNames[po.SupplierID],
			Status:       po.Status,
			CreatedAt:    po.CreatedAt,
			ReceivedAt:   po.ReceivedAt,
		}

		for _, item := range po.Items {
			name := item.IngredientName
			if name == "" && item.IngredientID != "" {
				if ing, err := s.store.GetByID(ctx, item.IngredientID); err == nil {
					name = ing.Name
				}
			}
			expanded.Items = append(expanded.Items, ExpandedItem{
				IngredientID:   item.IngredientID,
				IngredientName: name,
				Qty:            item.Qty,
				Unit:           item.Unit,
				PricePerUnit:   item.PricePerUnit,
			})
		}
		out = append(out, expanded)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PurchaseOrder, error) {
	return s.repo.GetByID(ctx, id)
}

// --------------------------------------------------
// Suppliers
// --------------------------------------------------
func (s *Service) CreateSupplier(ctx context.Context, name, phone string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("supplier name is required")
	}
	sup := &Supplier{Name: strings.TrimSpace(name), Phone: phone}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.suppliers.List(ctx)
}
