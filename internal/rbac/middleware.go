package rbac

import (
	"errors"
	"net/http"

	"booking-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// Gate enforces the policy table for the matched route. Routes with no
// declared requirement pass through. Use it after auth.RequireAccessToken on
// protected groups; on its own it denies any gated route with 403.
func Gate(policy *Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, declared := policy.Lookup(c.Request.Method, c.FullPath())
		if !declared {
			c.Next()
			return
		}
		authorize(c, req)
	}
}

// RequireAnyRole gates a single route or group inline.
func RequireAnyRole(allowed ...string) gin.HandlerFunc {
	req := make(Requirement, len(allowed))
	copy(req, allowed)
	return func(c *gin.Context) {
		authorize(c, req)
	}
}

func authorize(c *gin.Context, req Requirement) {
	p, ok := auth.CurrentPrincipal(c)
	if err := Authorize(p, ok, req); err != nil {
		var fe *ForbiddenError
		if errors.As(err, &fe) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": fe.Error(), "required_roles": fe.Required})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.Next()
}
