package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultProductPage  = 1
	defaultProductLimit = 100
	maxProductLimit     = 500
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	ListActive(ctx context.Context, withCategory bool) ([]dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	Create(ctx context.Context, req dto.CreateProductRequest, image *string) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest, image *string) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) (*dto.DeletedResponse, error)
	CleanupWithoutImages(ctx context.Context) (*dto.CleanupResponse, error)
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	cache      CatalogCache
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, cache CatalogCache) ProductService {
	if cache == nil {
		cache = noopCatalogCache{}
	}
	return &productService{repo: repo, categories: categories, cache: cache}
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	q := repository.ProductQuery{
		Page:         filter.Page,
		Limit:        filter.Limit,
		WithCategory: filter.IncludeCategory == nil || *filter.IncludeCategory,
	}
	if q.Page < 1 {
		q.Page = defaultProductPage
	}
	if q.Limit < 1 {
		q.Limit = defaultProductLimit
	}
	if q.Limit > maxProductLimit {
		q.Limit = maxProductLimit
	}

	products, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		items[i] = mapProduct(p)
	}
	return &dto.ProductListResponse{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (s *productService) ListActive(ctx context.Context, withCategory bool) ([]dto.ProductResponse, error) {
	if cached, ok := s.cache.GetActive(ctx, withCategory); ok {
		return cached, nil
	}

	products, err := s.repo.ListActive(ctx, withCategory)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = mapProduct(p)
	}
	s.cache.SetActive(ctx, withCategory, resp)
	return resp, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest, image *string) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:       name,
		CategoryID: req.CategoryID,
		Price:      price,
		Active:     true,
		Image:      image,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest, image *string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name cannot be empty")
		}
		p.Name = name
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		p.Price = price
	}
	if req.CategoryID != nil {
		categoryID, err := parseOptionalID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := s.checkCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if image != nil {
		p.Image = image
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uint) (*dto.DeletedResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, withKind(ErrConflict, "product is referenced by recorded sales")
		}
		return nil, notFound(err, ErrProductNotFound)
	}
	s.cache.Invalidate(ctx)
	return &dto.DeletedResponse{ID: id}, nil
}

func (s *productService) CleanupWithoutImages(ctx context.Context) (*dto.CleanupResponse, error) {
	ids, err := s.repo.DeleteWithoutImage(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, withKind(ErrConflict, "some products without image are referenced by recorded sales")
		}
		return nil, err
	}
	if len(ids) > 0 {
		s.cache.Invalidate(ctx)
		log.Info().Int("deleted", len(ids)).Msg("removed products without image")
	}
	return &dto.CleanupResponse{Deleted: len(ids), IDs: ids}, nil
}

func (s *productService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		return notFound(err, ErrCategoryNotFound)
	}
	return nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, invalidInput("price %q is not a number", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, invalidInput("price cannot be negative")
	}
	return price.Round(2), nil
}

// parseOptionalID reads a form value that may clear a reference: "" and
// "null" mean no reference.
func parseOptionalID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, invalidInput("invalid id %q", raw)
	}
	id := uint(n)
	return &id, nil
}
