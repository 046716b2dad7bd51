package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dog-boarding-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt verifier not configured")
)

// Verifier implementa auth.AuthVerifier con tokens HS256 firmados localmente.
// Se instancia desde main cuando hay JWT_SECRET.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, errors.New("jwt claims invalid")
	}

	claims := auth.Claims{
		UserID: stringClaim(mc, "sub"),
		Name:   stringClaim(mc, "name"),
		Role:   stringClaim(mc, "role"),
	}
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("jwt claims missing sub")
	}

	return claims, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	v, ok := mc[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
