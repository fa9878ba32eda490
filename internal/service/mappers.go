package service

import (
	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"
)

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Image:     c.Image,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func mapProduct(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		Active:     p.Active,
		Image:      p.Image,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Category != nil {
		cat := mapCategory(*p.Category)
		resp.Category = &cat
	}
	return resp
}

func mapCustomer(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func mapCustomerWithSales(row repository.CustomerWithSales) dto.CustomerResponse {
	resp := mapCustomer(row.Customer)
	count := row.SalesCount
	resp.SalesCount = &count
	return resp
}

func mapUser(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func mapSale(s *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		OrderNumber:   s.OrderNumber,
		CashierID:     s.CashierID,
		CustomerID:    s.CustomerID,
		Items:         make([]dto.SaleItemResponse, len(s.Items)),
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
	}
	if s.Cashier != nil {
		u := mapUser(*s.Cashier)
		resp.Cashier = &u
	}
	if s.Customer != nil {
		c := mapCustomer(*s.Customer)
		resp.Customer = &c
	}
	for i, it := range s.Items {
		item := dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		}
		if it.Product != nil {
			p := mapProduct(*it.Product)
			item.Product = &p
		}
		resp.Items[i] = item
	}
	return resp
}
