package users

import (
	"context"
	"errors"

	"booking-platform/internal/auth"
	"booking-platform/internal/rbac"

	"github.com/google/uuid"
)

// Directory adapts a Repository to the auth core's persistence contract.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

var _ auth.Directory = (*Directory)(nil)

func (d *Directory) FindPrincipalByID(ctx context.Context, id string) (auth.Account, error) {
	// Token subjects are user uuids; anything else cannot exist.
	if _, err := uuid.Parse(id); err != nil {
		return auth.Account{}, auth.ErrUnknownPrincipal
	}
	u, err := d.repo.GetByID(ctx, id)
	return toAccount(u, err)
}

func (d *Directory) FindPrincipalByEmail(ctx context.Context, email string) (auth.Account, error) {
	u, err := d.repo.GetByEmail(ctx, email)
	return toAccount(u, err)
}

func (d *Directory) CreatePrincipal(ctx context.Context, a auth.NewAccount) (auth.Account, error) {
	role := a.Role
	if role == "" {
		role = rbac.DefaultRole
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		PhoneNumber:  a.PhoneNumber,
		Role:         role,
	}
	if err := d.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return auth.Account{}, auth.ErrEmailTaken
		}
		return auth.Account{}, err
	}
	return toAccount(*u, nil)
}

func toAccount(u User, err error) (auth.Account, error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.Account{}, auth.ErrUnknownPrincipal
		}
		return auth.Account{}, err
	}
	return auth.Account{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Role: u.Role}, nil
}
