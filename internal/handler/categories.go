package handler

import (
	"net/http"

	"retailpos/internal/dto"
	"retailpos/internal/infra"
	"retailpos/internal/service"

	"github.com/gin-gonic/gin"
)

const categoryUploads = "categories"

type CategoriesHandler struct {
	svc     service.CategoryService
	uploads *infra.Uploads
}

func NewCategoriesHandler(svc service.CategoryService, uploads *infra.Uploads) *CategoriesHandler {
	return &CategoriesHandler{svc: svc, uploads: uploads}
}

// List GET /categories
func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListActive GET /categories/active
func (h *CategoriesHandler) ListActive(c *gin.Context) {
	resp, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /categories/:id
func (h *CategoriesHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param active formData bool false "Active (default true)"
// @Param image formData file false "Image (jpg, jpeg, png, gif, webp)"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} apierror.APIError
// @Router /categories [post]
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindFormAndValidate(c, &req) {
		return
	}
	image, ok := saveOptionalImage(c, h.uploads, categoryUploads)
	if !ok {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, image)
	if err != nil {
		h.discard(image)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update PATCH /categories/:id (multipart, every field optional)
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindFormAndValidate(c, &req) {
		return
	}
	image, ok := saveOptionalImage(c, h.uploads, categoryUploads)
	if !ok {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req, image)
	if err != nil {
		h.discard(image)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /categories/:id
func (h *CategoriesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoriesHandler) discard(image *string) {
	if image != nil && h.uploads != nil {
		h.uploads.Remove(*image)
	}
}
