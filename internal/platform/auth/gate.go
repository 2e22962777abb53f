// Package auth implements the single shared-password gate in front of the ledger.
// It is a convenience lock for a shared device, not user authentication.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/domain/shared"
)

const tokenType = "ledger"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// Session is an issued gate token
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Gate checks the password and issues and verifies session tokens
type Gate struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	clock        shared.Clock
}

// HashPassword returns the bcrypt hash for AUTH_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// NewGate prefers cfg.PasswordHash and hashes cfg.Password otherwise
func NewGate(cfg config.AuthConfig, clock shared.Clock) (*Gate, error) {
	hash := cfg.PasswordHash
	if hash == "" {
		var err error
		if hash, err = HashPassword(cfg.Password); err != nil {
			return nil, err
		}
	} else if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid AUTH_PASSWORD_HASH: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}

	return &Gate{
		passwordHash: []byte(hash),
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		clock:        clock,
	}, nil
}

// Login issues a session when password matches
func (g *Gate) Login(password string) (*Session, error) {
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	now := g.clock.Now()
	exp := now.Add(g.ttl)

	claims := jwt.MapClaims{
		"sub": "gate",
		"typ": tokenType,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{Token: signed, ExpiresAt: time.Unix(exp.Unix(), 0).UTC()}, nil
}

// Verify accepts unexpired HS256 tokens issued by Login
func (g *Gate) Verify(tokenStr string) error {
	if tokenStr == "" {
		return ErrInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.clock.Now), jwt.WithExpirationRequired())
	if err != nil || token == nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return ErrInvalidToken
	}
	return nil
}

// TTL is the lifetime of issued sessions
func (g *Gate) TTL() time.Duration {
	return g.ttl
}
