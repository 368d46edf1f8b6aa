package cart

import (
	"context"

	"techshop/internal/domain"
)

// Repository persists the cart aggregate. Every mutation recomputes the
// cart total from its lines inside the same transaction.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	CreateForUser(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertLine(ctx context.Context, cartID, productID string, quantity int, price int64) error
	RemoveLine(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}
