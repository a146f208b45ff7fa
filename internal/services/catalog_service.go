package services

import (
	"strings"

	"modaville/internal/domain"
	"modaville/internal/repos"

	"github.com/google/uuid"
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

func (s *CatalogService) ListProducts(q, category, gender string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(q, category, gender, pageSize, offset)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Code == "" {
		p.Code = "SP-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if p.SizesJSON == "" {
		p.SizesJSON = "[]"
	}
	if p.ColorsJSON == "" {
		p.ColorsJSON = "[]"
	}
	p.Active = true
	return s.Prods.Create(p)
}

func (s *CatalogService) UpdateProduct(p *domain.Product) error {
	return s.Prods.Update(p)
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.Prods.Delete(id)
}
