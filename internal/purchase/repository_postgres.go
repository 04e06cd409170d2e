package purchase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rasoi/internal/apperr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

// --------------------------------------------------
// Create purchase order with its items
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, po *PurchaseOrder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO purchase_orders (supplier_id, status)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, po.SupplierID, po.Status).Scan(&po.ID, &po.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range po.Items {
		var ingredientID *string
		if item.IngredientID != "" {
			ingredientID = &item.IngredientID
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO purchase_order_items (
				purchase_order_id,
				ingredient_id,
				ingredient_name,
				qty,
				unit,
				price_per_unit
			)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, po.ID, ingredientID, item.IngredientName, item.Qty, item.Unit, item.PricePerUnit)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*PurchaseOrder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, supplier_id, status, created_at, received_at
		FROM purchase_orders
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*PurchaseOrder
	byID := make(map[string]*PurchaseOrder)
	for rows.Next() {
		var po PurchaseOrder
		if err := rows.Scan(&po.ID, &po.SupplierID, &po.Status, &po.CreatedAt, &po.ReceivedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &po)
		byID[po.ID] = &po
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT purchase_order_id, COALESCE(ingredient_id::text, ''), ingredient_name, qty, unit, price_per_unit
		FROM purchase_order_items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var poID string
		var item POItem
		if err := itemRows.Scan(&poID, &item.IngredientID, &item.IngredientName, &item.Qty, &item.Unit, &item.PricePerUnit); err != nil {
			return nil, err
		}
		if po, ok := byID[poID]; ok {
			po.Items = append(po.Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := r.db.QueryRow(ctx, `
		SELECT id, supplier_id, status, created_at, received_at
		FROM purchase_orders
		WHERE id = $1
	`, id).Scan(&po.ID, &po.SupplierID, &po.Status, &po.CreatedAt, &po.ReceivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("purchase order", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(ingredient_id::text, ''), ingredient_name, qty, unit, price_per_unit
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item POItem
		if err := rows.Scan(&item.IngredientID, &item.IngredientName, &item.Qty, &item.Unit, &item.PricePerUnit); err != nil {
			return nil, err
		}
		po.Items = append(po.Items, item)
	}
	return &po, rows.Err()
}

// --------------------------------------------------
// Exactly-once status transition
// --------------------------------------------------
// The WHERE status = $2 guard makes the transition a compare-and-set:
// of two concurrent callers only one sees rows affected.
func (r *PostgresRepository) CompareAndSetStatus(ctx context.Context, id, from, to string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE purchase_orders
		SET status = $3,
		    received_at = CASE WHEN $3 = 'RECEIVED' THEN NOW() ELSE received_at END
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Distinguish "lost the race" from "no such order".
	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, apperr.NotFound("purchase order", id)
	}
	return false, nil
}

// --------------------------------------------------
// Suppliers
// --------------------------------------------------

type PostgresSupplierRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSupplierRepository(db *pgxpool.Pool) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{db: db}
}

var _ SupplierRepository = (*PostgresSupplierRepository)(nil)

func (r *PostgresSupplierRepository) Create(ctx context.Context, s *Supplier) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO suppliers (name, phone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, s.Name, s.Phone).Scan(&s.ID, &s.CreatedAt)
}

func (r *PostgresSupplierRepository) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, phone, created_at
		FROM suppliers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSupplierRepository) GetByID(ctx context.Context, id string) (*Supplier, error) {
	var s Supplier
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone, created_at
		FROM suppliers
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Phone, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("supplier", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
