// Package auth resolves bearer tokens into identities and gates identities
// by role. Everything here is read-only after construction and safe for
// concurrent use.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/user-management/internal/core/domain"
)

const (
	DefaultAlgorithm = "HS256"
	DefaultTTL       = 30 * time.Minute
)

var errNotHMAC = errors.New("only HMAC signing algorithms are supported")

// TokenConfig is the process-wide token setting, loaded once at startup.
type TokenConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// Tokens issues and resolves signed access tokens.
type Tokens struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: token secret is empty")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("auth: algorithm %q: %w", alg, errNotHMAC)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(cfg.Secret), method: method, ttl: ttl, now: time.Now}, nil
}

// Issue signs an access token carrying the subject email and role name.
func (t *Tokens) Issue(email string, role domain.Role) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(t.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies token and extracts the caller identity. Any failure is a
// *domain.AuthError: InvalidToken for signature, structure or expiry
// problems, MissingClaims when sub or role is absent.
func (t *Tokens) Resolve(token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return domain.Identity{}, &domain.AuthError{Kind: domain.AuthInvalidToken, Err: err}
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return domain.Identity{}, &domain.AuthError{Kind: domain.AuthMissingClaims}
	}

	return domain.Identity{Email: sub, Role: domain.Role(role)}, nil
}
