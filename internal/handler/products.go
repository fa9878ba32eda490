package handler

import (
	"net/http"
	"strconv"

	"retailpos/internal/dto"
	"retailpos/internal/infra"
	"retailpos/internal/service"

	"github.com/gin-gonic/gin"
)

const productUploads = "products"

type ProductsHandler struct {
	svc     service.ProductService
	uploads *infra.Uploads
}

func NewProductsHandler(svc service.ProductService, uploads *infra.Uploads) *ProductsHandler {
	return &ProductsHandler{svc: svc, uploads: uploads}
}

// List godoc
// @Summary      Paginated product catalog
// @Tags         products
// @Produce      json
// @Param        page             query int  false "Page (default 1)"
// @Param        limit            query int  false "Page size (default 100, max 500)"
// @Param        include_category query bool false "Embed the category (default true)"
// @Success      200 {object} dto.ProductListResponse
// @Router       /products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListActive godoc
// @Summary      Active products ordered by name
// @Tags         products
// @Produce      json
// @Param        include_category query bool false "Embed the category (default true)"
// @Success      200 {array} dto.ProductResponse
// @Router       /products/active [get]
func (h *ProductsHandler) ListActive(c *gin.Context) {
	withCategory := true
	if raw := c.Query("include_category"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, service.ErrInvalidInput)
			return
		}
		withCategory = v
	}
	resp, err := h.svc.ListActive(c.Request.Context(), withCategory)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
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
// @Summary      Create a product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name        formData string true  "Name"
// @Param        price       formData string true  "Price"
// @Param        category_id formData int    false "Category id"
// @Param        active      formData bool   false "Active (default true)"
// @Param        image       formData file   false "Image (jpg, jpeg, png, gif, webp)"
// @Success      201 {object} dto.ProductResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindFormAndValidate(c, &req) {
		return
	}
	image, ok := saveOptionalImage(c, h.uploads, productUploads)
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

// Update PATCH /products/:id (multipart, every field optional)
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindFormAndValidate(c, &req) {
		return
	}
	image, ok := saveOptionalImage(c, h.uploads, productUploads)
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

// Delete DELETE /products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CleanupNoImages godoc
// @Summary      Delete every product without an image
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CleanupResponse
// @Router       /products/cleanup/no-images [post]
func (h *ProductsHandler) CleanupNoImages(c *gin.Context) {
	resp, err := h.svc.CleanupWithoutImages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) discard(image *string) {
	if image != nil && h.uploads != nil {
		h.uploads.Remove(*image)
	}
}
