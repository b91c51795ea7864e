package services_test

import (
	"testing"
	"time"

	"taskboard/backend/internal/services"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := services.NewTokenService(testSecret, 24*time.Hour)
	userID := uuid.Must(uuid.NewV4())

	tokenString, err := tokens.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := tokens.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerify_Expired(t *testing.T) {
	tokens := services.NewTokenService(testSecret, 24*time.Hour)

	expired := signClaims(t, testSecret, jwt.MapClaims{
		"user_id": uuid.Must(uuid.NewV4()).String(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, err := tokens.Verify(expired)
	assert.ErrorIs(t, err, services.ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	tokens := services.NewTokenService(testSecret, 24*time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong signing key", signClaims(t, "other-secret", jwt.MapClaims{
			"user_id": uuid.Must(uuid.NewV4()).String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
		{"missing expiry claim", signClaims(t, testSecret, jwt.MapClaims{
			"user_id": uuid.Must(uuid.NewV4()).String(),
		})},
		{"missing user id claim", signClaims(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"non-uuid user id", signClaims(t, testSecret, jwt.MapClaims{
			"user_id": "42",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, services.ErrTokenMalformed)
		})
	}
}

func TestVerify_SameSecretAcrossInstances(t *testing.T) {
	issuer := services.NewTokenService(testSecret, 24*time.Hour)
	verifier := services.NewTokenService(testSecret, 24*time.Hour)
	userID := uuid.Must(uuid.NewV4())

	tokenString, err := issuer.Issue(userID)
	require.NoError(t, err)

	got, err := verifier.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
