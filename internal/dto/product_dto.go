package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest is bound from multipart/form-data. Price travels as a
// string and is parsed into a decimal by the service.
type CreateProductRequest struct {
	Name       string `form:"name"        json:"name"        validate:"required,min=1,max=150"`
	CategoryID *uint  `form:"category_id" json:"category_id" validate:"omitempty,gt=0"`
	Price      string `form:"price"       json:"price"       validate:"required,numeric"`
	Active     *bool  `form:"active"      json:"active"`
}

// UpdateProductRequest is a partial update. CategoryID "" or "null" clears
// the category; a number assigns it; absent leaves it unchanged.
type UpdateProductRequest struct {
	Name       *string `form:"name"        json:"name"        validate:"omitempty,min=1,max=150"`
	CategoryID *string `form:"category_id" json:"category_id"`
	Price      *string `form:"price"       json:"price"       validate:"omitempty,numeric"`
	Active     *bool   `form:"active"      json:"active"`
}

type ProductFilter struct {
	Page            int   `form:"page"             validate:"omitempty,min=1"`
	Limit           int   `form:"limit"            validate:"omitempty,min=1,max=500"`
	IncludeCategory *bool `form:"include_category"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	CategoryID *uint             `json:"category_id"`
	Category   *CategoryResponse `json:"category,omitempty"`
	Price      decimal.Decimal   `json:"price"`
	Active     bool              `json:"active"`
	Image      *string           `json:"image"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type DeletedResponse struct {
	ID uint `json:"id"`
}

type CleanupResponse struct {
	Deleted int    `json:"deleted"`
	IDs     []uint `json:"ids"`
}
