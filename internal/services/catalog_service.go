package services

import (
	"context"
	"errors"

	"shopdesk/internal/checkout"
	"shopdesk/internal/domain"
	"shopdesk/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// ListAvailable pages through sellable products, optionally in one category.
func (s *CatalogService) ListAvailable(ctx context.Context, catID string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListAvailable(ctx, catID, pageSize, offset)
}

// Product implements checkout.Catalog.
func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Product{}, checkout.ErrProductNotFound
	}
	return p, err
}
