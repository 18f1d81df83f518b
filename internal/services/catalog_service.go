package services

import (
	"strings"

	"greenbasket/internal/domain"
	"greenbasket/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// List returns all products, or those whose name contains filter
// (case-insensitive) when filter is non-empty.
func (s *CatalogService) List(filter string) ([]domain.Product, error) {
	return s.Prods.List(strings.TrimSpace(filter))
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(p domain.Product) error {
	return s.Prods.Create(p)
}
