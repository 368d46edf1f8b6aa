package catalog

import (
	"context"
	"errors"
	"strings"

	"techshop/internal/domain"
	productrepo "techshop/internal/repository/product"
)

var (
	ErrNameRequired    = errors.New("name required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNegativeStock   = errors.New("stock must not be negative")
)

// Service exposes catalog reads to the storefront and mutations to the
// admin panel. Stock is never touched by cart operations or checkout.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries product fields for create and update.
type Input struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if !domain.ValidCategory(in.Category) {
		return ErrInvalidCategory
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		Stock:       in.Stock,
	})
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		Stock:       in.Stock,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
