package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/repo"
)

// ProductSearcher is satisfied by es.ProductIndex.
type ProductSearcher interface {
	IndexProducts(ctx context.Context, products []models.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type ProductService struct {
	Repo   repo.ProductRepository
	Search ProductSearcher
}

func (s *ProductService) FindAll(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetAll(ctx)
}

func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "product", id)
	}
	return p, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: empty query", ErrValidation)
	}
	if s.Search == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}
	return s.Search.Search(ctx, q, from, size)
}

// Reindex pushes every stored product into the search index.
func (s *ProductService) Reindex(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, nil
	}
	products, err := s.Repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Search.IndexProducts(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

type CategoryService struct {
	Repo repo.CategoryRepository
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetAll(ctx)
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "category", id)
	}
	return c, nil
}
