package dto

import "time"

// Category writes arrive as multipart/form-data (optional "image" file part)
// or as plain JSON when no image is sent.
type CreateCategoryRequest struct {
	Name   string `form:"name"   json:"name"   validate:"required,min=1,max=100"`
	Active *bool  `form:"active" json:"active"`
}

type UpdateCategoryRequest struct {
	Name   *string `form:"name"   json:"name"   validate:"omitempty,min=1,max=100"`
	Active *bool   `form:"active" json:"active"`
}

type CategoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Image     *string   `json:"image"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
