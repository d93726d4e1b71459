package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/clock"
)

func TestTokenRoundTrip(t *testing.T) {
	fake := clock.Fake(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	issuer := NewTokenIssuer("s3cret", time.Hour, fake)

	token, expiresAt, err := issuer.Issue(ownership.Actor{ID: 42, Role: ownership.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, fake.Now().Add(time.Hour), expiresAt)

	actor, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, ownership.Actor{ID: 42, Role: ownership.RoleStaff}, actor)
}

func TestTokenExpires(t *testing.T) {
	fake := clock.Fake(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	issuer := NewTokenIssuer("s3cret", time.Hour, fake)

	token, _, err := issuer.Issue(ownership.Actor{ID: 42, Role: ownership.RoleMember})
	require.NoError(t, err)

	fake.Advance(2 * time.Hour)
	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherSecretAndAlgorithms(t *testing.T) {
	fake := clock.Fake(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	issuer := NewTokenIssuer("s3cret", time.Hour, fake)
	other := NewTokenIssuer("different", time.Hour, fake)

	token, _, err := other.Issue(ownership.Actor{ID: 42, Role: ownership.RoleStaff})
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":   "42",
		"class": "staff",
		"iss":   tokenIssuer,
		"exp":   fake.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsUnknownClass(t *testing.T) {
	fake := clock.Fake(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	issuer := NewTokenIssuer("s3cret", time.Hour, fake)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "42",
		"class": "moderator",
		"iss":   tokenIssuer,
		"exp":   fake.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = issuer.Parse(forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = issuer.Issue(ownership.Actor{ID: 1})
	require.Error(t, err)
}
