package order

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
// Create order with its items
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (status)
		VALUES ($1)
		RETURNING id, created_at
	`, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, qty)
			VALUES ($1, $2, $3)
		`, o.ID, item.MenuID, item.Qty)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, created_at
		FROM orders
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[string]*Order)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT order_id, menu_item_id, qty
		FROM order_items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item OrderItem
		if err := itemRows.Scan(&orderID, &item.MenuID, &item.Qty); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx, `
		SELECT id, status, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT menu_item_id, qty
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.MenuID, &item.Qty); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("order", id)
	}
	return nil
}
