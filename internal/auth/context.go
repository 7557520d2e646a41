package auth

import (
	"context"
	"errors"
)

// Principal is the identity asserted after authentication.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type ctxKey int

const ctxPrincipal ctxKey = iota

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFrom returns the principal resolved for this request, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	if !ok || p.ID == "" {
		return Principal{}, false
	}
	return p, true
}

func UserID(ctx context.Context) (string, error) {
	if p, ok := PrincipalFrom(ctx); ok {
		return p.ID, nil
	}
	return "", errors.New("user_id not in context")
}

func Role(ctx context.Context) (string, error) {
	if p, ok := PrincipalFrom(ctx); ok && p.Role != "" {
		return p.Role, nil
	}
	return "", errors.New("role not in context")
}
