package purchase

import "context"

// Repository defines storage operations for purchase orders.
type Repository interface {
	Create(ctx context.Context, po *PurchaseOrder) error
	List(ctx context.Context) ([]*PurchaseOrder, error)
	GetByID(ctx context.Context, id string) (*PurchaseOrder, error)

	// CompareAndSetStatus atomically transitions the order from `from` to
	// `to`, stamping ReceivedAt when `to` is RECEIVED. Returns false when
	// the current status is not `from` (a concurrent caller won the race);
	// the caller must then re-read the record.
	CompareAndSetStatus(ctx context.Context, id, from, to string) (bool, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) error
	List(ctx context.Context) ([]*Supplier, error)
	GetByID(ctx context.Context, id string) (*Supplier, error)
}
