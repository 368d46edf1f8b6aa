package cart

import (
	"context"
	"errors"

	"techshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, user_id::text, total, created_at, updated_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Total,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT l.product_id::text, COALESCE(p.name, ''), l.quantity, l.price
FROM cart_lines l
LEFT JOIN products p ON p.id = l.product_id
WHERE l.cart_id = $1
ORDER BY l.created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) CreateForUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id, total)
VALUES ($1, 0)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id::text, user_id::text, total, created_at, updated_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Total,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) UpsertLine(ctx context.Context, cartID, productID string, quantity int, price int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (cart_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price
`, cartID, productID, quantity, price); err != nil {
		return err
	}

	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveLine(ctx context.Context, cartID, productID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// No rows affected is fine: remove is idempotent.
	if _, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
		return err
	}

	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// recomputeTotal derives the cart total from its lines. Summing in SQL
// keeps the total == sum(price * quantity) invariant independent of what
// the caller thinks changed.
func recomputeTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total = COALESCE((
	SELECT SUM(price * quantity)
	FROM cart_lines
	WHERE cart_id = $1
), 0),
    updated_at = now()
WHERE id = $1
`, cartID)
	return err
}
