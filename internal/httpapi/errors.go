package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"booking-platform/internal/auth"
	"booking-platform/internal/business"
	"booking-platform/internal/catalog"
	"booking-platform/internal/rbac"
	"booking-platform/internal/users"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
)

// writeError maps service errors to a status and {"error": message}.
// Anything unclassified is a 500 and its text stays in the logs.
func writeError(c *gin.Context, err error) {
	var (
		verrs     validation.Errors
		forbidden *rbac.ForbiddenError
	)

	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs})

	case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, users.ErrEmailTaken):
		abort(c, http.StatusConflict, auth.ErrEmailTaken.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrUnauthenticated):
		abort(c, http.StatusUnauthorized, err.Error())
	case errors.As(err, &forbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": forbidden.Error(), "required_roles": forbidden.Required})

	case errors.Is(err, users.ErrNotFound):
		abort(c, http.StatusNotFound, err.Error())
	case errors.Is(err, business.ErrNotFound):
		abort(c, http.StatusNotFound, detail(err, business.ErrNotFound))
	case errors.Is(err, catalog.ErrNotFound):
		abort(c, http.StatusNotFound, detail(err, catalog.ErrNotFound))
	case errors.Is(err, business.ErrConflict):
		abort(c, http.StatusConflict, detail(err, business.ErrConflict))
	case errors.Is(err, catalog.ErrConflict):
		abort(c, http.StatusConflict, detail(err, catalog.ErrConflict))
	case errors.Is(err, business.ErrForbidden):
		abort(c, http.StatusForbidden, detail(err, business.ErrForbidden))
	case errors.Is(err, catalog.ErrForbidden):
		abort(c, http.StatusForbidden, detail(err, catalog.ErrForbidden))
	case errors.Is(err, business.ErrInvalidArgument):
		abort(c, http.StatusBadRequest, detail(err, business.ErrInvalidArgument))
	case errors.Is(err, catalog.ErrInvalidArgument):
		abort(c, http.StatusBadRequest, detail(err, catalog.ErrInvalidArgument))

	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "internal server error")
	}
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// detail drops the "<kind>: " prefix of a wrapped sentinel.
func detail(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

const (
	outcomeSuccess        = "success"
	outcomeInvalidRequest = "invalid_request"
)

// outcome labels an auth event for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, auth.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		return "invalid_token"
	default:
		return "error"
	}
}
