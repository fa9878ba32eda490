package dto

import "time"

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=100"`
	Phone   string  `json:"phone"   validate:"required,min=1,max=30"`
	Email   *string `json:"email"   validate:"omitempty,email,max=150"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=100"`
	Phone   *string `json:"phone"   validate:"omitempty,min=1,max=30"`
	Email   *string `json:"email"   validate:"omitempty,email,max=150"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type CustomerResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email"`
	Address    *string   `json:"address"`
	SalesCount *int64    `json:"sales_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
