package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/services"
	"todoapp/backend/internal/validation"
	"todoapp/backend/testutil"
)

func setupAuthService(t *testing.T) (*services.AuthService, *services.JWTService) {
	db := testutil.SetupTestDB(t)
	jwtService := services.NewJWTService(testAuthConfig())
	return services.NewAuthService(repositories.NewUserRepository(db), jwtService), jwtService
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, jwtService := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.UserRegisterRequest{
		Email:     "ana@example.com",
		Password:  "password123",
		FirstName: "Ana",
		LastName:  "García",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	res, err := svc.Login(ctx, "ana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.Email)
	assert.Equal(t, "Ana", res.FirstName)
	assert.Equal(t, "García", res.LastName)

	claims, err := jwtService.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	req := models.UserRegisterRequest{Email: "dup@example.com", Password: "password123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

	_, err = svc.Register(ctx, models.UserRegisterRequest{Email: "bad", Password: "short"})
	_, ok := validation.AsValidationError(err)
	assert.True(t, ok, "expected validation error, got %v", err)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.UserRegisterRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ana@example.com", "wrong-password")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}
