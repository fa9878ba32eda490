package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"retailpos/internal/apierror"
	"retailpos/internal/infra"
	"retailpos/internal/middleware"
	"retailpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// gte=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their wire name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// On false the error response is already written and the caller must return.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindFormAndValidate binds multipart/form-data, urlencoded or JSON bodies
// depending on Content-Type.
func bindFormAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// cashierID is the authenticated user id set by middleware.JWTAuth.
func cashierID(c *gin.Context) uint {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// respondError maps service and gorm errors to status codes. Unknown errors
// are attached to the context and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrNoValidItems),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, infra.ErrUnsupportedImage),
		errors.Is(err, infra.ErrImageTooLarge):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, gorm.ErrRecordNotFound):
		status, msg = http.StatusNotFound, "resource not found"
	case errors.Is(err, service.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		status, msg = http.StatusConflict, "resource already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		status, msg = http.StatusConflict, "resource is referenced by other records"
	case errors.Is(err, service.ErrUnavailable):
		status, msg = http.StatusServiceUnavailable, err.Error()
	default:
		// Logged by middleware.ErrorHandler.
		_ = c.Error(err)
	}
	c.JSON(status, apierror.New(msg))
}

// saveOptionalImage stores the "image" part of a multipart request. It
// returns nil when the request carries no file.
func saveOptionalImage(c *gin.Context, uploads *infra.Uploads, kind string) (*string, bool) {
	if uploads == nil || !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, true
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid image upload"))
		return nil, false
	}
	path, err := uploads.SaveImage(c, kind, fh)
	if err != nil {
		if errors.Is(err, infra.ErrUnsupportedImage) || errors.Is(err, infra.ErrImageTooLarge) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		} else {
			respondError(c, err)
		}
		return nil, false
	}
	return &path, true
}
