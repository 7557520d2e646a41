package auth

import "github.com/golang-jwt/jwt/v5"

// Purpose tags a token as access or refresh. Each purpose has its own secret.
type Purpose string

const (
	PurposeAccess  Purpose = "access"
	PurposeRefresh Purpose = "refresh"
)

// Claims is the only supported JWT claims shape for this service.
// The principal id travels in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims

	Role    string  `json:"role"`
	Purpose Purpose `json:"token_type"`
}

func (c Claims) PrincipalID() string { return c.Subject }
