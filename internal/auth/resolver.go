package auth

import (
	"context"
	"errors"
	"fmt"
)

// Account is the durable identity record the auth core reads.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
}

func (a Account) Principal() Principal { return Principal{ID: a.ID, Role: a.Role} }

// NewAccount is what registration persists. An empty Role means the
// directory's default role.
type NewAccount struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         string
}

// Directory is the persistence collaborator consumed by the auth core.
// Lookups return ErrUnknownPrincipal when no record exists; CreatePrincipal
// returns ErrEmailTaken on a duplicate email and assigns the default role
// when none is given.
type Directory interface {
	FindPrincipalByID(ctx context.Context, id string) (Account, error)
	FindPrincipalByEmail(ctx context.Context, email string) (Account, error)
	CreatePrincipal(ctx context.Context, a NewAccount) (Account, error)
}

// Resolver re-reads the current role from storage for a verified subject,
// so role changes apply without re-login.
type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

func (r *Resolver) Resolve(ctx context.Context, subjectID string) (Principal, error) {
	if subjectID == "" {
		return Principal{}, ErrUnknownPrincipal
	}
	acc, err := r.dir.FindPrincipalByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			return Principal{}, ErrUnknownPrincipal
		}
		return Principal{}, fmt.Errorf("resolve principal: %w", err)
	}
	return acc.Principal(), nil
}
