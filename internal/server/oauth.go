package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
)

// authRoutes serves the unauthenticated half of the OAuth flow. The code
// exchange happens server to server, so access and refresh tokens never
// appear in a redirect URL.
type authRoutes struct {
	api *API
}

// Routes implements [Handler].
func (h *authRoutes) Routes() []string {
	return []string{
		"/api/auth/login",
		"/api/auth/callback",
		"/api/auth/session",
	}
}

// ServeHTTP implements [Handler].
func (h *authRoutes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.URL.Path {
	case "/api/auth/login":
		h.login(w, req)
	case "/api/auth/callback":
		h.callback(w, req)
	case "/api/auth/session":
		h.session(w, req)
	default:
		http.NotFound(w, req)
	}
}

// login mints a state value and answers with the Google consent URL.
func (h *authRoutes) login(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	state := shared.GenerateID()

	h.api.mu.Lock()
	h.api.prunePendingLocked(time.Now())
	h.api.pending[state] = pendingState{createdAt: time.Now()}
	h.api.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"authorization_url": h.api.flow.AuthURL(state),
		"state":             state,
	})
}

// callback receives the Google redirect, exchanges the code, creates the
// session and stashes a signed JWT for pickup via /api/auth/session.
func (h *authRoutes) callback(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := req.URL.Query()
	if errMsg := query.Get("error"); errMsg != "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("authorization denied: %s", errMsg))
		return
	}

	state := query.Get("state")
	code := query.Get("code")
	if state == "" || code == "" {
		writeError(w, http.StatusBadRequest, "missing state or code")
		return
	}

	h.api.mu.Lock()
	entry, ok := h.api.pending[state]
	h.api.mu.Unlock()
	if !ok || time.Since(entry.createdAt) > stateTTL {
		writeError(w, http.StatusBadRequest, "invalid or expired state")
		return
	}

	token, err := h.api.flow.Exchange(req.Context(), code)
	if err != nil {
		h.api.logger.Error("code exchange failed", "error", err)
		writeError(w, http.StatusBadGateway, "code exchange failed")
		return
	}

	profile, err := h.api.flow.UserInfo(req.Context(), token)
	if err != nil {
		h.api.logger.Error("userinfo fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch user profile")
		return
	}

	now := time.Now()
	session := &models.Session{
		ID:           shared.GenerateID(),
		UserID:       profile.ID,
		Email:        profile.Email,
		Name:         profile.Name,
		Picture:      profile.Picture,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		ExpiresAt:    now.Add(time.Duration(h.api.config.Auth.SessionTTLDays) * 24 * time.Hour),
		CreatedAt:    now,
	}
	if err := h.api.store.Create(session); err != nil {
		h.api.logger.Error("failed to persist session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	jwt, err := h.api.issuer.Issue(profile, session.ID)
	if err != nil {
		h.api.logger.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.api.mu.Lock()
	entry.token = jwt
	entry.profile = profile
	h.api.pending[state] = entry
	h.api.mu.Unlock()

	h.api.logger.Info("login complete", "user", profile.Email)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, callbackPage, profile.Name)
}

// session hands the issued JWT to the client that started the flow. Each
// state works exactly once; the entry is deleted on pickup.
func (h *authRoutes) session(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	state := req.URL.Query().Get("state")
	if state == "" {
		writeError(w, http.StatusBadRequest, "missing state")
		return
	}

	h.api.mu.Lock()
	entry, ok := h.api.pending[state]
	if ok && entry.token != "" {
		delete(h.api.pending, state)
	}
	h.api.mu.Unlock()

	if !ok || time.Since(entry.createdAt) > stateTTL {
		writeError(w, http.StatusNotFound, "unknown state")
		return
	}
	if entry.token == "" {
		// Callback has not landed yet; the client should poll again.
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": entry.token,
		"token_type":   "bearer",
		"user":         entry.profile,
	})
}

// prunePendingLocked drops stale states. Caller holds api.mu.
func (a *API) prunePendingLocked(now time.Time) {
	for state, entry := range a.pending {
		if now.Sub(entry.createdAt) > stateTTL {
			delete(a.pending, state)
		}
	}
}

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>WatchLog Insights</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>Signed in</h1>
<p>Welcome, %s. You can close this tab and return to the app.</p>
</body>
</html>
`
