package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	cookiePath          = "/"
)

// SessionTransport carries a token pair in two http-only, same-site strict
// cookies. There is no server-side session; the cookies are the session.
type SessionTransport struct {
	secure bool
}

func NewSessionTransport(secure bool) SessionTransport {
	return SessionTransport{secure: secure}
}

// Attach sets both cookies with Max-Age equal to each token's remaining lifetime.
func (s SessionTransport) Attach(c *gin.Context, pair TokenPair, now time.Time) {
	s.set(c, AccessCookie, pair.Access.Value, maxAge(pair.Access.ExpiresAt, now))
	s.set(c, RefreshCookie, pair.Refresh.Value, maxAge(pair.Refresh.ExpiresAt, now))
}

// Clear expires both cookies. Attributes must match the ones used in Attach
// or some clients keep the cookie.
func (s SessionTransport) Clear(c *gin.Context) {
	s.set(c, AccessCookie, "", -1)
	s.set(c, RefreshCookie, "", -1)
}

func (s SessionTransport) set(c *gin.Context, name, value string, maxAgeSeconds int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAgeSeconds, cookiePath, "", s.secure, true)
}

// ExtractAccessToken reads the access cookie, falling back to a Bearer header.
func ExtractAccessToken(r *http.Request) (string, bool) {
	if ck, err := r.Cookie(AccessCookie); err == nil && ck.Value != "" {
		return ck.Value, true
	}
	raw := strings.TrimSpace(r.Header.Get(authorizationHeader))
	if !strings.HasPrefix(raw, bearerPrefix) {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	return tok, tok != ""
}

// ExtractRefreshToken reads the refresh cookie only.
func ExtractRefreshToken(r *http.Request) (string, bool) {
	ck, err := r.Cookie(RefreshCookie)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

func maxAge(exp, now time.Time) int {
	secs := int(exp.Sub(now) / time.Second)
	if secs < 1 {
		return -1
	}
	return secs
}
