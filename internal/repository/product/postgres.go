package product

import (
	"context"
	"errors"
	"io"
	"log"

	"techshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, name, category, price, COALESCE(description, ''), COALESCE(image, ''), stock, created_at
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.Image, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, name, category, price, COALESCE(description, ''), COALESCE(image, ''), stock, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.Image, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, category, price, description, image, stock)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Category, p.Price, p.Description, p.Image, p.Stock).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%q", res.ID, res.Name)
	return &res, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $1, category = $2, price = $3, description = NULLIF($4, ''), image = NULLIF($5, ''), stock = $6
WHERE id = $7
RETURNING created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Category, p.Price, p.Description, p.Image, p.Stock, p.ID).Scan(&res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}
