package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RoundTripsClaims(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(42, "mentor", 7)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, int64(7), claims.MentorProfileID)
}

func TestGenerateToken_MenteeHasNoProfileClaim(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(11, "mentee", 0)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.UserID)
	assert.Zero(t, claims.MentorProfileID)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := New("test-secret", -time.Minute)

	token, err := svc.GenerateToken(42, "mentee", 0)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).GenerateToken(42, "mentee", 0)
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsWrongSigningMethod(t *testing.T) {
	svc := New("test-secret", time.Hour)

	claims := Claims{
		UserID: 42,
		Role:   "mentee",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsWrongIssuer(t *testing.T) {
	svc := New("test-secret", time.Hour)

	claims := Claims{
		UserID: 42,
		Role:   "mentee",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
