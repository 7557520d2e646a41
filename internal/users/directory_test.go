package users

import (
	"context"
	"errors"
	"testing"

	"booking-platform/internal/auth"
	"booking-platform/internal/rbac"
)

func TestDirectory_CreateAssignsDefaultRole(t *testing.T) {
	dir := NewDirectory(NewMemoryRepository())
	ctx := context.Background()

	acc, err := dir.CreatePrincipal(ctx, auth.NewAccount{Email: "a@b.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if acc.Role != rbac.DefaultRole || acc.ID == "" {
		t.Fatalf("unexpected account %+v", acc)
	}

	staff, err := dir.CreatePrincipal(ctx, auth.NewAccount{Email: "s@b.com", PasswordHash: "h", Role: rbac.RoleStaff})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if staff.Role != rbac.RoleStaff {
		t.Fatalf("expected explicit role kept, got %q", staff.Role)
	}
}

func TestDirectory_MapsErrors(t *testing.T) {
	repo := NewMemoryRepository()
	dir := NewDirectory(repo)
	ctx := context.Background()

	acc, err := dir.CreatePrincipal(ctx, auth.NewAccount{Email: "a@b.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := dir.CreatePrincipal(ctx, auth.NewAccount{Email: "a@b.com", PasswordHash: "h"}); !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("expected auth.ErrEmailTaken, got %v", err)
	}

	got, err := dir.FindPrincipalByEmail(ctx, "a@b.com")
	if err != nil || got.ID != acc.ID {
		t.Fatalf("find by email: %+v %v", got, err)
	}
	if _, err := dir.FindPrincipalByEmail(ctx, "x@b.com"); !errors.Is(err, auth.ErrUnknownPrincipal) {
		t.Fatalf("expected ErrUnknownPrincipal, got %v", err)
	}
	if _, err := dir.FindPrincipalByID(ctx, "not-a-uuid"); !errors.Is(err, auth.ErrUnknownPrincipal) {
		t.Fatalf("expected ErrUnknownPrincipal for malformed id, got %v", err)
	}

	repo.Delete(acc.ID)
	if _, err := dir.FindPrincipalByID(ctx, acc.ID); !errors.Is(err, auth.ErrUnknownPrincipal) {
		t.Fatalf("expected ErrUnknownPrincipal after delete, got %v", err)
	}
}
