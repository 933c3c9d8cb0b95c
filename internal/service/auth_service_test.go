package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gstsim/internal/config"
	"gstsim/internal/domain"
	"gstsim/internal/service"
	"gstsim/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "gstsim",
	}
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "learner@example.com",
		PasswordHash: string(hash),
		FullName:     "Asha Learner",
		Role:         domain.RoleLearner,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token pair", func(t *testing.T) {
		user := testUser(t, "correct-horse")
		userRepo := new(mocks.MockUserRepo)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		svc := service.NewAuthService(userRepo, testJWTConfig())
		pair, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)

		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.True(t, pair.ExpiresAt.After(time.Now()))

		claims, err := svc.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, domain.RoleLearner, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		user := testUser(t, "correct-horse")
		userRepo := new(mocks.MockUserRepo)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		svc := service.NewAuthService(userRepo, testJWTConfig())
		_, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: "battery-staple"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

		svc := service.NewAuthService(userRepo, testJWTConfig())
		_, err := svc.Login(ctx, service.LoginInput{Email: "nobody@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		user := testUser(t, "correct-horse")
		user.IsActive = false
		userRepo := new(mocks.MockUserRepo)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		svc := service.NewAuthService(userRepo, testJWTConfig())
		_, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: "correct-horse"})
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token", func(t *testing.T) {
		user := testUser(t, "correct-horse")
		userRepo := new(mocks.MockUserRepo)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		svc := service.NewAuthService(userRepo, testJWTConfig())
		pair, err := svc.Login(ctx, service.LoginInput{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)

		renewed, err := svc.RefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, renewed.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := service.NewAuthService(userRepo, testJWTConfig())

		_, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestValidateToken_WrongSecret(t *testing.T) {
	ctx := context.Background()
	user := testUser(t, "correct-horse")
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	issuer := service.NewAuthService(userRepo, testJWTConfig())
	pair, err := issuer.Login(ctx, service.LoginInput{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Secret = "different-secret"
	verifier := service.NewAuthService(userRepo, otherCfg)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
