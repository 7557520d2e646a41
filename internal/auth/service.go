package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Service composes hashing, token issuance and identity resolution into the
// register / login / refresh flows. Logout is purely a transport concern
// (SessionTransport.Clear); tokens stay valid until they expire.
type Service struct {
	dir      Directory
	tokens   *Manager
	resolver *Resolver
	log      *slog.Logger

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(dir Directory, tokens *Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		dir:      dir,
		tokens:   tokens,
		resolver: NewResolver(dir),
		log:      log,
		clock:    time.Now,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Session is the result of a successful login or refresh.
type Session struct {
	Tokens    TokenPair
	Principal Principal
}

// NormalizeEmail is applied on every write and lookup of an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName lowercases and trims person names before storage.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register creates an account with the directory's default role. It does not
// log in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Principal, error) {
	email := NormalizeEmail(in.Email)

	_, err := s.dir.FindPrincipalByEmail(ctx, email)
	switch {
	case err == nil:
		return Principal{}, ErrEmailTaken
	case !errors.Is(err, ErrUnknownPrincipal):
		return Principal{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return Principal{}, err
	}

	acc, err := s.dir.CreatePrincipal(ctx, NewAccount{
		Email:        email,
		PasswordHash: hash,
		FirstName:    NormalizeName(in.FirstName),
		LastName:     NormalizeName(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
	})
	if err != nil {
		// A concurrent register can still hit the unique constraint.
		if errors.Is(err, ErrEmailTaken) {
			return Principal{}, ErrEmailTaken
		}
		return Principal{}, fmt.Errorf("create principal: %w", err)
	}
	return acc.Principal(), nil
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	acc, err := s.dir.FindPrincipalByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			// Spend the same hashing time as a real check.
			_, _ = VerifyPassword(dummyHash(), password)
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup email: %w", err)
	}

	ok, err := VerifyPassword(acc.PasswordHash, password)
	if err != nil {
		return Session{}, fmt.Errorf("verify password for %s: %w", acc.ID, err)
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	return s.issue(acc.Principal())
}

// Refresh rotates both tokens. Every token or principal problem surfaces as
// ErrInvalidRefreshToken; only storage failures pass through.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.Verify(refreshToken, PurposeRefresh, s.clock())
	if err != nil {
		s.log.DebugContext(ctx, "refresh token rejected", "err", err)
		return Session{}, ErrInvalidRefreshToken
	}

	p, err := s.resolver.Resolve(ctx, claims.PrincipalID())
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			s.log.DebugContext(ctx, "refresh for unknown principal", "sub", claims.PrincipalID())
			return Session{}, ErrInvalidRefreshToken
		}
		return Session{}, err
	}

	return s.issue(p)
}

// Resolver exposes the identity resolver used by request middleware.
func (s *Service) Resolver() *Resolver { return s.resolver }

// Tokens exposes the token manager used by request middleware.
func (s *Service) Tokens() *Manager { return s.tokens }

// Now is the service clock.
func (s *Service) Now() time.Time { return s.clock() }

func (s *Service) issue(p Principal) (Session, error) {
	pair, err := s.tokens.IssuePair(s.clock(), p.ID, p.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{Tokens: pair, Principal: p}, nil
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = HashPassword("not-a-real-password")
	})
	return dummy
}
