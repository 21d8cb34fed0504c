package services

import (
	"context"
	"fmt"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/utils"
	"github.com/StoneLedger/crusher_books_app/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// oauthStateBytes is the entropy of the CSRF state token.
const oauthStateBytes = 16

// googleOAuthService implements the GoogleOAuthHandlerSvcFacade interface.
type googleOAuthService struct {
	BaseService
	oauthConfig *oauth2.Config
}

// NewGoogleOAuthService creates a new Google OAuth service from app config.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				googleoauth.UserinfoEmailScope,
				googleoauth.UserinfoProfileScope,
			},
			Endpoint: google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthService)(nil)

// GenerateStateString creates a CSRF state token for the OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(oauthStateBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to.
func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCodeForToken exchanges an authorization code for a token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange oauth code")
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// GetUserInfo fetches the Google profile for the authenticated token.
func (s *googleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(s.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create google oauth2 client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch google userinfo")
		return nil, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: google profile has no email", apperrors.ErrUnauthorized)
	}

	verified := info.VerifiedEmail != nil && *info.VerifiedEmail
	return &domain.GoogleUserInfo{
		Email:         info.Email,
		EmailVerified: verified,
		Name:          info.Name,
		Subject:       info.Id,
	}, nil
}
