package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *memDirectory) {
	t.Helper()
	dir := newMemDirectory()
	return NewService(dir, newTestManager(t), nil), dir
}

func TestRegisterLoginRefresh(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Register(ctx, RegisterInput{Email: " A@B.com ", Password: "Abc12345!", FirstName: "Ann", LastName: "Lee"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.ID == "" || p.Role != "regular" {
		t.Fatalf("unexpected principal %+v", p)
	}

	sess, err := svc.Login(ctx, "a@b.com", "Abc12345!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Principal != p {
		t.Fatalf("login principal %+v, want %+v", sess.Principal, p)
	}

	claims, err := svc.Tokens().Verify(sess.Tokens.Access.Value, PurposeAccess, svc.Now())
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.Role != "regular" {
		t.Fatalf("expected role regular, got %q", claims.Role)
	}

	next, err := svc.Refresh(ctx, sess.Tokens.Refresh.Value)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.Principal != p {
		t.Fatalf("refresh principal %+v", next.Principal)
	}
	if next.Tokens.Refresh.Value == sess.Tokens.Refresh.Value {
		t.Fatalf("expected rotated refresh token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc12345!"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Email: "A@B.COM", Password: "Other123!"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc12345!"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPass := svc.Login(ctx, "a@b.com", "nope")
	_, noUser := svc.Login(ctx, "x@b.com", "Abc12345!")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(noUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v / %v", wrongPass, noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("login errors differ: %q vs %q", wrongPass, noUser)
	}
}

func TestLoginStorageFailure(t *testing.T) {
	svc, dir := newTestService(t)
	dir.failErr = errStorageDown
	_, err := svc.Login(context.Background(), "a@b.com", "x")
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestRefreshRejects(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	p, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc12345!"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	sess, err := svc.Login(ctx, "a@b.com", "Abc12345!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(ctx, ""); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("empty: %v", err)
	}
	if _, err := svc.Refresh(ctx, sess.Tokens.Refresh.Value+"x"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("tampered: %v", err)
	}
	if _, err := svc.Refresh(ctx, sess.Tokens.Access.Value); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token as refresh: %v", err)
	}

	dir.remove(p.ID)
	if _, err := svc.Refresh(ctx, sess.Tokens.Refresh.Value); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("deleted principal: %v", err)
	}
}

func TestRefreshAfterExpiry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc12345!"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	sess, err := svc.Login(ctx, "a@b.com", "Abc12345!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.clock = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	if _, err := svc.Refresh(ctx, sess.Tokens.Refresh.Value); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected expired refresh rejected, got %v", err)
	}
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	p, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc12345!"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	sess, err := svc.Login(ctx, "a@b.com", "Abc12345!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	dir.setRole(p.ID, "business_owner")
	next, err := svc.Refresh(ctx, sess.Tokens.Refresh.Value)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.Principal.Role != "business_owner" {
		t.Fatalf("expected refreshed role, got %q", next.Principal.Role)
	}
}

func TestResolverUnknownAndEmpty(t *testing.T) {
	r := NewResolver(newMemDirectory())
	if _, err := r.Resolve(context.Background(), ""); !errors.Is(err, ErrUnknownPrincipal) {
		t.Fatalf("empty subject: %v", err)
	}
	if _, err := r.Resolve(context.Background(), "ghost"); !errors.Is(err, ErrUnknownPrincipal) {
		t.Fatalf("unknown subject: %v", err)
	}
}
