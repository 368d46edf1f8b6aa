package product

import (
	"context"

	"techshop/internal/domain"
)

// Repository persists catalog products. Mutations only happen through
// admin operations; cart logic reads only.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
