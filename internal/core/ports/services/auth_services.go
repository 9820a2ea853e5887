package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// TokenSvcFacade issues and validates the application's JWT access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (token string, expiresAt time.Time, err error)
	ValidateAccessToken(ctx context.Context, tokenString string) (userID string, err error)
}

// GoogleOAuthSvcFacade exchanges and validates Google sign-in credentials.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken swaps the frontend's authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies the ID token's signature and audience.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
