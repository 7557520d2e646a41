package auth

import (
	"errors"
	"net/http"
	"time"

	"booking-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// RequireAccessToken verifies an access token, re-resolves the principal from
// storage and injects it into the request context.
// It does not perform RBAC checks; those belong to internal/rbac.
func RequireAccessToken(m *Manager, r *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := ExtractAccessToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
			return
		}

		claims, err := m.Verify(tok, PurposeAccess, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
			return
		}

		p, err := r.Resolve(c.Request.Context(), claims.PrincipalID())
		if err != nil {
			if errors.Is(err, ErrUnknownPrincipal) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// SetPrincipal stores p on both the request context and the gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
	c.Set(principalKey, p)
	c.Set(logger.PrincipalIDKey, p.ID)
}

// CurrentPrincipal returns the principal populated by RequireAccessToken.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok && p.ID != "" {
			return p, true
		}
	}
	return PrincipalFrom(c.Request.Context())
}
