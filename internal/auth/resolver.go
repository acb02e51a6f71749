package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// ErrAuthenticationFailed covers every token rejection: empty or malformed
// tokens as well as tokens rejected by the issuer. Callers get no finer
// signal than this.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Identity describes the user a token resolves to.
type Identity struct {
	ID    string
	Email string
}

// Resolver turns an opaque bearer token into a user identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

// JWTResolver validates HMAC-signed bearer tokens issued by the auth provider.
type JWTResolver struct {
	secret []byte
	logger zerolog.Logger
}

// NewJWTResolver builds a resolver over the shared signing secret.
func NewJWTResolver(secret string, logger zerolog.Logger) *JWTResolver {
	return &JWTResolver{
		secret: []byte(secret),
		logger: logger.With().Str("component", "auth_resolver").Logger(),
	}
}

// Resolve validates the token and extracts the subject identity.
func (r *JWTResolver) Resolve(_ context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, fmt.Errorf("%w: empty token", ErrAuthenticationFailed)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		r.logger.Debug().Err(err).Msg("token rejected")
		return Identity{}, fmt.Errorf("%w: invalid token", ErrAuthenticationFailed)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("%w: invalid token claims", ErrAuthenticationFailed)
	}

	identity := Identity{}
	if sub, err := claims.GetSubject(); err == nil {
		identity.ID = sub
	}
	if identity.ID == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrAuthenticationFailed)
	}

	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}
