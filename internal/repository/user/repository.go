package user

import (
	"context"

	"techshop/internal/domain"
)

// UpdateInput carries the fields the admin panel may change. Password
// changes never go through this path.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *string
}

// Repository persists and fetches user accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
