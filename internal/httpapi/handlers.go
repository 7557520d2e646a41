package httpapi

import (
	"net/http"

	"booking-platform/internal/audit"
	"booking-platform/internal/auth"
	"booking-platform/internal/business"
	"booking-platform/internal/catalog"
	"booking-platform/internal/metrics"
	"booking-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth     *auth.Service
	Sessions auth.SessionTransport
	Users    *users.Service
	Business *business.Service
	Catalog  *catalog.Catalog
	Metrics  *metrics.Collectors
}

// currentPrincipal aborts with 401 when no principal was resolved.
func currentPrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
	}
	return p, ok
}

func actorOf(c *gin.Context, p auth.Principal) audit.Actor {
	return audit.Actor{UserID: p.ID, Role: p.Role, IP: c.ClientIP()}
}

type validatable interface {
	Validate() error
}

// bindJSON decodes and validates the body, writing the 400 itself.
func bindJSON(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return false
	}
	if err := req.Validate(); err != nil {
		writeError(c, err)
		return false
	}
	return true
}

// --- Auth ---

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		h.Metrics.AuthEvent(metrics.EventRegister, outcomeInvalidRequest)
		return
	}

	p, err := h.Auth.Register(c.Request.Context(), auth.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	h.Metrics.AuthEvent(metrics.EventRegister, outcome(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!", "user": p})
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		h.Metrics.AuthEvent(metrics.EventLogin, outcomeInvalidRequest)
		return
	}

	sess, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	h.Metrics.AuthEvent(metrics.EventLogin, outcome(err))
	if err != nil {
		writeError(c, err)
		return
	}
	h.Sessions.Attach(c, sess.Tokens, sess.Tokens.IssuedAt)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully signed in!", "user": sess.Principal})
}

// Refresh reads the refresh cookie and rotates both cookies.
func (h Handlers) Refresh(c *gin.Context) {
	tok, ok := auth.ExtractRefreshToken(c.Request)
	if !ok {
		h.Metrics.AuthEvent(metrics.EventRefresh, outcomeInvalidRequest)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "refresh token not found"})
		return
	}

	sess, err := h.Auth.Refresh(c.Request.Context(), tok)
	h.Metrics.AuthEvent(metrics.EventRefresh, outcome(err))
	if err != nil {
		writeError(c, err)
		return
	}
	h.Sessions.Attach(c, sess.Tokens, sess.Tokens.IssuedAt)
	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed successfully!"})
}

// Logout clears both cookies. Issued tokens stay valid until they expire.
func (h Handlers) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	h.Metrics.AuthEvent(metrics.EventLogout, outcomeSuccess)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out!"})
}
