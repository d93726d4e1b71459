package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/clock"
	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
)

const tokenIssuer = "arcadia"

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = fmt.Errorf("invalid token: %w", httpx.ErrUnauthorized)

type actorClaims struct {
	jwt.RegisteredClaims
	Class string `json:"class"`
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewTokenIssuer builds a TokenIssuer. A nil clock uses the system clock.
func NewTokenIssuer(secret string, ttl time.Duration, c clock.Clock) *TokenIssuer {
	if c == nil {
		c = clock.System()
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, clock: c}
}

// Issue signs a token for actor and returns it with its expiry.
func (t *TokenIssuer) Issue(actor ownership.Actor) (string, time.Time, error) {
	if actor.Role == ownership.RoleUnknown {
		return "", time.Time{}, errors.New("auth: refusing to issue token for unknown role")
	}
	now := t.clock.Now()
	expiresAt := now.Add(t.ttl)
	claims := actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(actor.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Class: actor.Role.String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies token and returns the actor it names.
func (t *TokenIssuer) Parse(token string) (ownership.Actor, error) {
	var claims actorClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return ownership.Actor{}, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return ownership.Actor{}, ErrInvalidToken
	}
	role, err := ownership.ParseRole(claims.Class)
	if err != nil {
		return ownership.Actor{}, ErrInvalidToken
	}
	return ownership.Actor{ID: id, Role: role}, nil
}
