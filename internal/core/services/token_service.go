package services

import (
	"context"
	"fmt"
	"time"

	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/platform/config"
	"github.com/uniformes-app/backoffice/internal/utils"
)

// TokenService issues and validates the HS256 access tokens that protect the
// API.
type TokenService struct {
	cfg *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

func (s *TokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *TokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("invalid access token: %w", apperrors.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("access token has no subject: %w", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}
