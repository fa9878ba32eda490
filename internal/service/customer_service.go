package service

import (
	"context"
	"strings"

	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"
)

type CustomerService interface {
	// List returns every customer with its sales count, or the customers
	// matching search when it is not blank.
	List(ctx context.Context, search string) ([]dto.CustomerResponse, error)
	Get(ctx context.Context, id uint) (*dto.CustomerResponse, error)
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context, search string) ([]dto.CustomerResponse, error) {
	if term := strings.TrimSpace(search); term != "" {
		list, err := s.repo.Search(ctx, term)
		if err != nil {
			return nil, err
		}
		resp := make([]dto.CustomerResponse, len(list))
		for i, c := range list {
			resp[i] = mapCustomer(c)
		}
		return resp, nil
	}

	rows, err := s.repo.ListWithSalesCount(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CustomerResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapCustomerWithSales(row)
	}
	return resp, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	resp := mapCustomer(*c)
	return &resp, nil
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   trimmedOrNil(req.Email),
		Address: trimmedOrNil(req.Address),
	}
	if c.Name == "" || c.Phone == "" {
		return nil, invalidInput("name and phone are required")
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCustomer(*c)
	return &resp, nil
}

func (s *customerService) Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}

	if req.Name != nil {
		if c.Name = strings.TrimSpace(*req.Name); c.Name == "" {
			return nil, invalidInput("name cannot be empty")
		}
	}
	if req.Phone != nil {
		if c.Phone = strings.TrimSpace(*req.Phone); c.Phone == "" {
			return nil, invalidInput("phone cannot be empty")
		}
	}
	if req.Email != nil {
		c.Email = trimmedOrNil(req.Email)
	}
	if req.Address != nil {
		c.Address = trimmedOrNil(req.Address)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCustomer(*c)
	return &resp, nil
}

// Delete refuses to remove a customer that recorded sales still point to.
func (s *customerService) Delete(ctx context.Context, id uint) error {
	n, err := s.repo.CountSales(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return withKind(ErrConflict, "customer has %d recorded sales", n)
	}
	return notFound(s.repo.Delete(ctx, id), ErrCustomerNotFound)
}

// trimmedOrNil maps absent or blank optional strings to NULL.
func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
