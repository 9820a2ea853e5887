package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/core/services"
	"github.com/uniformes-app/backoffice/internal/platform/config"
)

func tokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret-do-not-use",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "uniformes-backoffice",
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := services.NewTokenService(tokenConfig())
	user := &domain.User{UserID: uuid.NewString()}

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, userID)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := services.NewTokenService(tokenConfig())

	_, err := svc.ValidateAccessToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := services.NewTokenService(tokenConfig())
	token, _, err := issuer.GenerateAccessToken(context.Background(), &domain.User{UserID: uuid.NewString()})
	require.NoError(t, err)

	other := services.NewTokenService(&config.Config{
		JWTSecret:         "a-different-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "uniformes-backoffice",
	})
	_, err = other.ValidateAccessToken(context.Background(), token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	expired := services.NewTokenService(&config.Config{
		JWTSecret:         "test-secret-do-not-use",
		JWTExpiryDuration: -time.Minute,
		JWTIssuer:         "uniformes-backoffice",
	})
	token, _, err := expired.GenerateAccessToken(context.Background(), &domain.User{UserID: uuid.NewString()})
	require.NoError(t, err)

	svc := services.NewTokenService(tokenConfig())
	_, err = svc.ValidateAccessToken(context.Background(), token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
