package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/uniformes-app/backoffice/internal/apperrors"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/platform/config"
)

// GoogleOAuthService handles the server side of "Sign in with Google".
type GoogleOAuthService struct {
	oauthConfig *oauth2.Config
	clientID    string
}

func NewGoogleOAuthService(cfg *config.Config) *GoogleOAuthService {
	return &GoogleOAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		clientID: cfg.GoogleClientID,
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*GoogleOAuthService)(nil)

func (s *GoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", apperrors.ErrUnauthorized)
	}
	return token, nil
}

func (s *GoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid Google ID token: %w", apperrors.ErrUnauthorized)
	}
	return payload, nil
}
