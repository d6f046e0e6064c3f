package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service errors onto HTTP responses. Known sentinel errors
// get their canonical status; an AppError carries its own code; anything else
// is a 500 with the fallback message so internals never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &appErr):
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindingErrorMessage renders a binding failure for the client. Validator
// errors are flattened into one readable line per failed field.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}

	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts[i] = fmt.Sprintf("%s is required", fe.Field())
		case "oneof":
			parts[i] = fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		case "email":
			parts[i] = fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "min":
			parts[i] = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max":
			parts[i] = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "hexcolor":
			parts[i] = fmt.Sprintf("%s must be a hex color", fe.Field())
		default:
			parts[i] = fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
		}
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
