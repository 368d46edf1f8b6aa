package seed

import (
	"context"
	"fmt"

	"techshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Category    string
	Price       int64
	Description string
	Stock       int
}

var defaultProducts = []productSeed{
	{Name: "Intel Core i7-12700K", Category: domain.CategoryCPU, Price: 8500000, Description: "Intel Core i7 12th generation processor", Stock: 10},
	{Name: "AMD Ryzen 7 5800X", Category: domain.CategoryCPU, Price: 7200000, Description: "AMD Ryzen 7 processor", Stock: 8},
	{Name: "NVIDIA RTX 4070", Category: domain.CategoryGPU, Price: 25000000, Description: "NVIDIA RTX 4070 graphics card", Stock: 5},
	{Name: "AMD RX 6700 XT", Category: domain.CategoryGPU, Price: 18000000, Description: "AMD RX 6700 XT graphics card", Stock: 7},
	{Name: "Corsair 32GB DDR4", Category: domain.CategoryRAM, Price: 3200000, Description: "Corsair 32GB DDR4 memory kit", Stock: 15},
	{Name: "Samsung 1TB SSD", Category: domain.CategoryStorage, Price: 2800000, Description: "Samsung 1TB solid state drive", Stock: 20},
}

// Apply inserts the default admin account and starter catalog. It is
// idempotent: the admin upsert keys on username and products are only
// inserted into an empty catalog.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	empty, err := catalogEmpty(ctx, pool)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if !empty {
		return nil
	}

	for _, p := range defaultProducts {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	const q = `
INSERT INTO users (first_name, last_name, email, phone, username, password_hash, role)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (username) DO NOTHING
`
	_, err = pool.Exec(ctx, q,
		"System", "Administrator", "admin@techshop.ir", "09123456789",
		"admin", string(hash), domain.RoleAdmin)
	return err
}

func catalogEmpty(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, category, price, description, stock)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Category, p.Price, p.Description, p.Stock)
	return err
}
