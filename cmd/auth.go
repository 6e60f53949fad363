package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/watchlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// loginPollInterval and loginTimeout bound the token pickup loop while the
// user completes the consent flow in the browser.
const (
	loginPollInterval = 2 * time.Second
	loginTimeout      = 3 * time.Minute
)

// savedToken is the on-disk token file written after a successful login.
type savedToken struct {
	AccessToken string    `json:"access_token"`
	SavedAt     time.Time `json:"saved_at"`
}

func tokenPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".watchlog", "token.json"), nil
}

func saveToken(token string) (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create auth directory: %w", err)
	}

	data, err := json.MarshalIndent(savedToken{AccessToken: token, SavedAt: time.Now()}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write token file: %w", err)
	}
	return path, nil
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: no saved token, run 'watchlog auth login'", shared.ErrNotAuthenticated)
	}

	var token savedToken
	if err := json.Unmarshal(data, &token); err != nil {
		return "", fmt.Errorf("%w: token file is corrupt", shared.ErrInvalidToken)
	}
	return token.AccessToken, nil
}

// AuthLogin runs the browser OAuth flow against a running server and saves
// the issued token locally.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("starting login flow")

	resp, err := r.api.Get(ctx, "/api/auth/login")
	if err != nil {
		return fmt.Errorf("%w: is the server running? %v", shared.ErrServiceUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	var login struct {
		AuthorizationURL string `json:"authorization_url"`
		State            string `json:"state"`
	}
	if err := json.Unmarshal(resp.Body, &login); err != nil {
		return fmt.Errorf("%w: unexpected login response: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL to sign in:\n%s\n\n", login.AuthorizationURL)
	} else {
		r.writePlain("Opening browser for Google sign-in...\n")
		if err := shared.OpenBrowser(login.AuthorizationURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open this URL to sign in:\n%s\n\n", login.AuthorizationURL)
		}
	}

	token, err := r.pollForToken(ctx, login.State)
	if err != nil {
		return err
	}

	path, err := saveToken(token)
	if err != nil {
		return err
	}

	r.logger.Info("login successful", "token_file", path)
	r.writePlain("✓ Signed in, token saved to %s\n", path)
	return nil
}

// pollForToken polls the one-shot pickup endpoint until the callback lands
// or the timeout passes.
func (r *Runner) pollForToken(ctx context.Context, state string) (string, error) {
	deadline := time.Now().Add(loginTimeout)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(loginPollInterval):
		}

		resp, err := r.api.Get(ctx, "/api/auth/session?state="+state)
		if err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
		}

		switch {
		case resp.StatusCode == 202:
			continue
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			var pickup struct {
				AccessToken string `json:"access_token"`
			}
			if err := json.Unmarshal(resp.Body, &pickup); err != nil || pickup.AccessToken == "" {
				return "", fmt.Errorf("%w: unexpected session response", shared.ErrAuthFailed)
			}
			return pickup.AccessToken, nil
		default:
			return "", fmt.Errorf("%w: status %d, body: %s", shared.ErrAuthFailed, resp.StatusCode, string(resp.Body))
		}
	}

	return "", fmt.Errorf("%w: timed out waiting for browser sign-in", shared.ErrAuthFailed)
}

// AuthStatus checks server health and whether the saved token is accepted.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking auth status")

	resp, err := r.api.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}
	r.writePlain("✓ Service is healthy\n")

	token, err := loadToken()
	if err != nil {
		r.writePlain("Authentication: ✗ No saved token\n")
		return nil
	}

	r.api.SetToken(token)
	if _, err := r.api.Me(ctx); err != nil {
		r.writePlain("Authentication: ✗ Saved token rejected\n")
		return nil
	}

	r.writePlain("Authentication: ✓ Authenticated\n")
	return nil
}

// AuthWhoami shows the profile behind the saved token.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	token, err := loadToken()
	if err != nil {
		return err
	}
	r.api.SetToken(token)

	profile, err := r.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return r.writeJSON(profile, true)
}

// AuthLogout invalidates the server-side session and removes the token file.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	token, err := loadToken()
	if err != nil {
		return err
	}
	r.api.SetToken(token)

	if resp, err := r.api.Post(ctx, "/api/auth/logout", nil); err != nil {
		r.logger.Warn("logout request failed", "error", err)
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.logger.Warn("logout rejected", "status", resp.StatusCode)
	}

	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}

	r.writePlain("✓ Signed out\n")
	return nil
}
