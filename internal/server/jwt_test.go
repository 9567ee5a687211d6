package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-intake/internal/config"
)

func newTestJWTService(expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestJWTService(24)
	clientID := uuid.New()

	token, err := service.GenerateToken(clientID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "compact JWT has header, payload, and signature")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, clientID, claims.ClientID)
	assert.Equal(t, clientID.String(), claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_DistinctClients(t *testing.T) {
	service := newTestJWTService(24)
	clientA := uuid.New()
	clientB := uuid.New()

	tokenA, err := service.GenerateToken(clientA)
	require.NoError(t, err)
	tokenB, err := service.GenerateToken(clientB)
	require.NoError(t, err)
	assert.NotEqual(t, tokenA, tokenB)

	claimsA, err := service.ValidateToken(tokenA)
	require.NoError(t, err)
	assert.Equal(t, clientA, claimsA.ClientID)

	claimsB, err := service.ValidateToken(tokenB)
	require.NoError(t, err)
	assert.Equal(t, clientB, claimsB.ClientID)
}

func TestJWTService_WrongSecret(t *testing.T) {
	minter := newTestJWTService(24)
	verifier := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-secret-also-32-bytes-long",
		ExpirationHours: 24,
	})

	token, err := minter.GenerateToken(uuid.New())
	require.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_MalformedTokens(t *testing.T) {
	service := newTestJWTService(24)

	tests := []struct {
		name  string
		token string
	}{
		{"one part", "invalid"},
		{"two parts", "invalid.token"},
		{"four parts", "invalid.token.format.extra"},
		{"bad base64", "invalid.base64.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_EmptyToken(t *testing.T) {
	service := newTestJWTService(24)

	claims, err := service.ValidateToken("")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "empty")
}

func TestJWTService_Expired(t *testing.T) {
	service := newTestJWTService(24)
	clientID := uuid.New()

	// Hand-sign a token with a one second lifetime so the test does not wait
	// on the configured expiration.
	now := time.Now()
	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(service.config.Secret))
	require.NoError(t, err)

	validClaims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, clientID, validClaims.ClientID)

	time.Sleep(2 * time.Second)

	expiredClaims, err := service.ValidateToken(token)
	require.Error(t, err)
	assert.Nil(t, expiredClaims)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_ExpirationHours(t *testing.T) {
	for _, hours := range []int{1, 12, 48} {
		service := newTestJWTService(hours)

		token, err := service.GenerateToken(uuid.New())
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		require.NotNil(t, claims.ExpiresAt)
		assert.WithinDuration(t, time.Now().Add(time.Duration(hours)*time.Hour), claims.ExpiresAt.Time, time.Minute)
	}
}
