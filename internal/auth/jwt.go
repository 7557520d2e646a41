package auth

import (
	"errors"
	"fmt"
	"time"

	"booking-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager mints and verifies access and refresh tokens. Each purpose is
// signed with its own secret so a leaked access secret cannot forge refresh
// tokens and vice versa.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	if cfg.RefreshSecret == "" {
		return nil, errors.New("JWT_REFRESH_SECRET is required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		accessTTL:     ParseTTL(cfg.AccessTTL),
		refreshTTL:    ParseTTL(cfg.RefreshTTL),
	}, nil
}

// Token is a signed token plus its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type TokenPair struct {
	Access   Token
	Refresh  Token
	IssuedAt time.Time
}

// TTL returns the configured lifetime for purpose.
func (m *Manager) TTL(p Purpose) time.Duration {
	if p == PurposeRefresh {
		return m.refreshTTL
	}
	return m.accessTTL
}

/* ===================== ISSUE TOKENS ===================== */

func (m *Manager) IssuePair(now time.Time, principalID, role string) (TokenPair, error) {
	access, err := m.Issue(now, PurposeAccess, principalID, role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.Issue(now, PurposeRefresh, principalID, role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh, IssuedAt: now}, nil
}

func (m *Manager) Issue(now time.Time, purpose Purpose, principalID, role string) (Token, error) {
	secret, err := m.secretFor(purpose)
	if err != nil {
		return Token{}, err
	}
	if principalID == "" {
		return Token{}, errors.New("principal id is required")
	}

	exp := now.Add(m.TTL(purpose))
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			Issuer:    m.issuer,
			Audience:  audienceOrNil(m.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		Role:    role,
		Purpose: purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign %s token: %w", purpose, err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

/* ===================== VERIFY TOKEN ===================== */

// Verify checks signature, expiry and purpose. It does not check that the
// principal still exists; see Resolver.
func (m *Manager) Verify(tokenString string, purpose Purpose, now time.Time) (Claims, error) {
	secret, err := m.secretFor(purpose)
	if err != nil {
		return Claims{}, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	var claims Claims
	_, err = jwt.NewParser(opts...).ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Purpose != purpose {
		return Claims{}, fmt.Errorf("%w: token_type mismatch", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: sub missing", ErrInvalidToken)
	}
	if claims.Role == "" {
		return Claims{}, fmt.Errorf("%w: role missing", ErrInvalidToken)
	}
	return claims, nil
}

func (m *Manager) secretFor(p Purpose) ([]byte, error) {
	switch p {
	case PurposeAccess:
		return m.accessSecret, nil
	case PurposeRefresh:
		return m.refreshSecret, nil
	default:
		return nil, fmt.Errorf("unknown token purpose %q", p)
	}
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
