// Package token issues and verifies the signed bearer tokens used by the API.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

const (
	DefaultTTL = 24 * time.Hour
	issuerName = "trade-ops-api"
)

// ErrInvalid is returned for any token that fails signature, algorithm or
// expiry checks.
var ErrInvalid = errors.New("invalid token")

// Claims is the token payload.
type Claims struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// Principal converts the claims into the caller identity.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{
		UserID:   c.UserID,
		Username: c.Username,
		FullName: c.FullName,
		Role:     domain.Role(c.Role),
	}
}

// Manager signs and verifies HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of m reading time from now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	cp := *m
	cp.now = now
	return &cp
}

// Issue signs a token for p valid for the manager's TTL.
func (m *Manager) Issue(p domain.Principal) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:   p.UserID,
		Role:     string(p.Role),
		Username: p.Username,
		FullName: p.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuerName,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalid
	}
	if claims.UserID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
