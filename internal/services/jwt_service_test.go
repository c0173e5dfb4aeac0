package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/config"
	"todoapp/backend/internal/models"
	"todoapp/backend/internal/services"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test_very_secret_jwt_key_here",
		Issuer:    "todoapp",
		Audience:  "todoapp-clients",
		TokenTTL:  time.Hour,
	}
}

var testUser = &models.User{ID: 42, Email: "ana@example.com", FirstName: "Ana", LastName: "García"}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := services.NewJWTService(testAuthConfig())

	token, err := svc.GenerateToken(testUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, &models.SessionClaims{
		UserID:    42,
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
	}, claims)
}

func TestJWTService_Rejects(t *testing.T) {
	cfg := testAuthConfig()
	svc := services.NewJWTService(cfg)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := valid()
	noExpiry.ExpiresAt = nil
	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"
	wrongAudience := valid()
	wrongAudience.Audience = jwt.ClaimStrings{"other-app"}
	badSubject := valid()
	badSubject.Subject = "not-a-number"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"expired", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), expired)},
		{"missing exp", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), noExpiry)},
		{"foreign secret", sign(jwt.SigningMethodHS256, []byte("another_secret"), valid())},
		{"wrong issuer", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), wrongIssuer)},
		{"wrong audience", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), wrongAudience)},
		{"HS512 not allowed", sign(jwt.SigningMethodHS512, []byte(cfg.JWTSecret), valid())},
		{"alg none", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid())},
		{"non numeric subject", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), badSubject)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, services.ErrInvalidToken)
		})
	}
}
