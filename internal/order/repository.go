package order

import "context"

// Repository defines storage operations for placed orders.
// Delete exists only to compensate a placement whose deductions failed;
// fulfilled orders are never removed.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Delete(ctx context.Context, id string) error
}
