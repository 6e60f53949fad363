// Google OAuth2 authorization-code flow
//
// Endpoint and scope constants follow the Google OAuth2 documentation.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Scopes requested during login: read-only YouTube access plus the basic
// profile used for the dashboard header.
var scopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
	"openid",
}

// Flow wraps the Google authorization-code exchange.
type Flow struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewFlow creates a Flow from Google credentials.
func NewFlow(cfg shared.GoogleConfig) (*Flow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google client credentials not set", shared.ErrInvalidConfig)
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &Flow{
		config:      config,
		userInfoURL: googleUserInfoURL,
		httpClient:  http.DefaultClient,
	}, nil
}

// AuthURL returns the Google authorization URL for user login.
//
// Offline access with a consent prompt so a refresh token is always issued.
func (f *Flow) AuthURL(state string) string {
	return f.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades an authorization code for Google tokens.
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// UserInfo fetches the minimal Google profile for the given token.
func (f *Flow) UserInfo(ctx context.Context, token *oauth2.Token) (*models.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("userinfo request failed: status %d", resp.StatusCode)
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	if profile.ID == "" || profile.Email == "" {
		return nil, fmt.Errorf("%w: userinfo response missing id or email", shared.ErrAuthFailed)
	}

	return &profile, nil
}

// Refresh exchanges a stored refresh token for a fresh access token.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	source := f.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	return token, nil
}
