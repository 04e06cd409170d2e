package menu

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
// Create menu item with its recipe lines
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, item *MenuItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO menu_items (name, category, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, item.Name, item.Category, item.Price).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return err
	}

	for _, line := range item.Recipe {
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_recipe_lines (menu_item_id, ingredient_name, quantity, unit)
			VALUES ($1, $2, $3, $4)
		`, item.ID, line.IngredientName, line.Quantity, line.Unit)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, price, created_at
		FROM menu_items
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	byID := make(map[string]*MenuItem)
	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
		byID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.db.Query(ctx, `
		SELECT menu_item_id, ingredient_name, quantity, unit
		FROM menu_recipe_lines
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var itemID string
		var line RecipeLine
		if err := lineRows.Scan(&itemID, &line.IngredientName, &line.Quantity, &line.Unit); err != nil {
			return nil, err
		}
		if item, ok := byID[itemID]; ok {
			item.Recipe = append(item.Recipe, line)
		}
	}
	return items, lineRows.Err()
}

// --------------------------------------------------
// Replace recipe lines
// --------------------------------------------------
// Replacing a recipe never touches past stock adjustments; usage history
// keeps the amounts that were deducted at placement time.
func (r *PostgresRepository) UpdateRecipe(ctx context.Context, id string, recipe []RecipeLine) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `SELECT 1 FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("menu item", id)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM menu_recipe_lines WHERE menu_item_id = $1`, id); err != nil {
		return err
	}
	for _, line := range recipe {
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_recipe_lines (menu_item_id, ingredient_name, quantity, unit)
			VALUES ($1, $2, $3, $4)
		`, id, line.IngredientName, line.Quantity, line.Unit)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	var item MenuItem
	err := r.db.QueryRow(ctx, `
		SELECT id, name, category, price, created_at
		FROM menu_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("menu item", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT ingredient_name, quantity, unit
		FROM menu_recipe_lines
		WHERE menu_item_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line RecipeLine
		if err := rows.Scan(&line.IngredientName, &line.Quantity, &line.Unit); err != nil {
			return nil, err
		}
		item.Recipe = append(item.Recipe, line)
	}
	return &item, rows.Err()
}
