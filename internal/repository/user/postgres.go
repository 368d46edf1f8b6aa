package user

import (
	"context"
	"errors"
	"io"
	"log"

	"techshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const userColumns = `id::text, first_name, last_name, email, phone, username, password_hash, role, created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (first_name, last_name, email, phone, username, password_hash, role)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text, created_at
`
	res := u
	err := r.pool.QueryRow(ctx, q, u.FirstName, u.LastName, u.Email, u.Phone, u.Username, u.PasswordHash, u.Role).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create username=%q error=%v", u.Username, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s username=%q", res.ID, res.Username)
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetch(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetch(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Printf("user repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error) {
	const q = `
UPDATE users
SET first_name = COALESCE($1, first_name),
    last_name = COALESCE($2, last_name),
    email = COALESCE($3, email),
    phone = COALESCE($4, phone),
    role = COALESCE($5, role)
WHERE id = $6
RETURNING ` + userColumns + `
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, in.FirstName, in.LastName, in.Email, in.Phone, in.Role, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("user repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("user repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
