package cart

import (
	"context"
	"errors"
	"sync"

	"techshop/internal/domain"
)

var (
	// ErrProductNotFound is returned when the referenced product does not
	// exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrLineNotFound is returned when an update targets a product the
	// cart has no line for.
	ErrLineNotFound = errors.New("product not found in cart")
	// ErrInvalidQuantity rejects non-positive quantities. Callers that
	// want a line gone must use Remove, not a zero quantity.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	CreateForUser(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertLine(ctx context.Context, cartID, productID string, quantity int, price int64) error
	RemoveLine(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service owns the cart consistency rules: stock validation, price
// snapshot refresh, and total recomputation via the repository. Mutations
// for one user are serialized with a per-user lock; the underlying store
// does not guard the read-modify-write sequence on its own.
type Service struct {
	repo     cartRepo
	products productRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{
		repo:     repo,
		products: products,
		locks:    make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing mutations for one user's cart.
// Entries are never evicted; the map is bounded by the number of users.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get returns the user's cart, creating an empty one if none exists yet.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.repo.CreateForUser(ctx, userID)
	}
	return cart, err
}

// Add puts quantity units of a product into the cart, merging with any
// existing line. The resulting line quantity is validated against current
// stock, and the line price snapshot is refreshed to the product's
// current price.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	newQty := quantity
	if line := cart.LineFor(productID); line != nil {
		newQty += line.Quantity
	}
	if product.Stock < newQty {
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: newQty,
			Available: product.Stock,
		}
	}

	if err := s.repo.UpsertLine(ctx, cart.ID, productID, newQty, product.Price); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// Update sets the line quantity for a product already in the cart and
// refreshes the line's price snapshot.
func (s *Service) Update(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.LineFor(productID) == nil {
		return nil, ErrLineNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Stock,
		}
	}

	if err := s.repo.UpsertLine(ctx, cart.ID, productID, quantity, product.Price); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// Remove deletes the line for a product. Removing a product the cart does
// not hold is not an error.
func (s *Service) Remove(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLine(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// Clear empties the cart and zeroes its total. The aggregate record stays.
func (s *Service) Clear(ctx context.Context, userID string) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}
