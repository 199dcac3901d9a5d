package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/farmnet/farmledger/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Generate creates a signed JWT access token for a ledger user. The
// identity claim names the wallet label mutating requests run under.
func Generate(cfg *config.Config, username, identity, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      username,
		"identity": identity,
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(cfg.JWT.AccessTokenTTL).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Parse verifies a token and returns its claims.
func Parse(cfg *config.Config, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
