package service

import (
	"context"
	"strings"

	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	ListActive(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	// image is the stored public path of an uploaded file, or nil.
	Create(ctx context.Context, req dto.CreateCategoryRequest, image *string) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest, image *string) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	return s.list(ctx, false)
}

func (s *categoryService) ListActive(ctx context.Context) ([]dto.CategoryResponse, error) {
	return s.list(ctx, true)
}

func (s *categoryService) list(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest, image *string) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	c := &model.Category{
		Name:   name,
		Image:  image,
		Active: true,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest, image *string) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name cannot be empty")
		}
		c.Name = name
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if image != nil {
		c.Image = image
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	return notFound(s.repo.Delete(ctx, id), ErrCategoryNotFound)
}
