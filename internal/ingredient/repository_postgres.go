package ingredient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const ingredientColumns = `
	id,
	name,
	unit,
	category,
	cost_per_unit,
	stock,
	low_stock_threshold,
	created_at
`

// --------------------------------------------------
// Create a new ingredient
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	query := `
		INSERT INTO ingredients (
			name,
			unit,
			category,
			cost_per_unit,
			stock,
			low_stock_threshold
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		ing.Name,
		ing.Unit,
		ing.Category,
		ing.CostPerUnit,
		ing.Stock,
		ing.LowStockThreshold,
	).Scan(&ing.ID, &ing.CreatedAt)

	// Unique index on LOWER(name) enforces case-insensitive uniqueness.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Validationf("ingredient %q already exists", ing.Name)
	}
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIngredients(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE id = $1
	`, id)

	ing, err := scanIngredient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ingredient", id)
	}
	return ing, err
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*Ingredient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE LOWER(name) = LOWER($1)
	`, name)

	ing, err := scanIngredient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ingredient", name)
	}
	return ing, err
}

// --------------------------------------------------
// Full-field update (stock is only ever changed through deltas)
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, ing *Ingredient) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET name = $2,
		    unit = $3,
		    category = $4,
		    cost_per_unit = $5,
		    low_stock_threshold = $6
		WHERE id = $1
	`, ing.ID, ing.Name, ing.Unit, ing.Category, ing.CostPerUnit, ing.LowStockThreshold)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Validationf("ingredient %q already exists", ing.Name)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("ingredient", ing.ID)
	}
	return nil
}

// --------------------------------------------------
// Atomic single-key adjustment
// --------------------------------------------------
func (r *PostgresRepository) AdjustStock(ctx context.Context, id string, delta float64, reason string) (*Ingredient, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// stock = stock + delta is a single-statement read-modify-write;
	// postgres serializes it per row, so concurrent adjustments never lose.
	row := tx.QueryRow(ctx, `
		UPDATE ingredients
		SET stock = stock + $2
		WHERE id = $1
		RETURNING `+ingredientColumns,
		id, delta)

	ing, err := scanIngredient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ingredient", id)
	}
	if err != nil {
		return nil, err
	}

	if err := insertAdjustment(ctx, tx, id, delta, reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ing, nil
}

// --------------------------------------------------
// Atomic multi-key write (order deduction, PO receipt)
// --------------------------------------------------
func (r *PostgresRepository) ApplyDeltas(ctx context.Context, deltas []StockDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, d := range deltas {
		var tag pgconn.CommandTag
		if d.CostPerUnit != nil {
			tag, err = tx.Exec(ctx, `
				UPDATE ingredients
				SET stock = stock + $2,
				    cost_per_unit = $3
				WHERE id = $1
			`, d.IngredientID, d.Delta, *d.CostPerUnit)
		} else {
			tag, err = tx.Exec(ctx, `
				UPDATE ingredients
				SET stock = stock + $2
				WHERE id = $1
			`, d.IngredientID, d.Delta)
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// Rolls back everything applied so far.
			return apperr.NotFound("ingredient", d.IngredientID)
		}

		if err := insertAdjustment(ctx, tx, d.IngredientID, d.Delta, d.Reason); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListAdjustments(ctx context.Context, ingredientID string) ([]*StockAdjustment, error) {
	query := `
		SELECT id, ingredient_id, delta, reason, created_at
		FROM stock_adjustments
	`
	args := []any{}
	if ingredientID != "" {
		query += ` WHERE ingredient_id = $1`
		args = append(args, ingredientID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*StockAdjustment
	for rows.Next() {
		var adj StockAdjustment
		if err := rows.Scan(&adj.ID, &adj.IngredientID, &adj.Delta, &adj.Reason, &adj.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &adj)
	}
	return out, rows.Err()
}

// --------------------------------------------------
// Scan helpers
// --------------------------------------------------

func insertAdjustment(ctx context.Context, tx pgx.Tx, ingredientID string, delta float64, reason string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_adjustments (ingredient_id, delta, reason)
		VALUES ($1, $2, $3)
	`, ingredientID, delta, reason)
	return err
}

func scanIngredient(row pgx.Row) (*Ingredient, error) {
	var ing Ingredient
	err := row.Scan(
		&ing.ID,
		&ing.Name,
		&ing.Unit,
		&ing.Category,
		&ing.CostPerUnit,
		&ing.Stock,
		&ing.LowStockThreshold,
		&ing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func scanIngredients(rows pgx.Rows) ([]*Ingredient, error) {
	var out []*Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}
