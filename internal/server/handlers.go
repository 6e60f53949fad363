package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlog/internal/auth"
	"github.com/desertthunder/watchlog/internal/insights"
	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
	"github.com/desertthunder/watchlog/internal/tasks"
)

// Version reported by the root endpoint.
const Version = "1.0.0"

// stateTTL bounds how long a pending OAuth state (and its uncollected token)
// stays valid.
const stateTTL = 10 * time.Minute

// validWindows are the lookback windows the dashboard accepts.
var validWindows = map[int]bool{7: true, 30: true, 90: true}

// API holds all dependencies for the REST handlers.
type API struct {
	config *shared.Config
	logger *log.Logger
	issuer *auth.Issuer
	flow   *auth.Flow
	store  models.SessionStore
	engine tasks.SyncEngine

	mu      sync.RWMutex
	pool    models.NamePool
	pending map[string]pendingState
}

// pendingState tracks an OAuth state from login through token pickup.
type pendingState struct {
	createdAt time.Time
	token     string // Issued JWT, set after the callback completes
	profile   *models.UserProfile
}

// APIOpts contains configuration options for creating an API.
type APIOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Issuer *auth.Issuer
	Flow   *auth.Flow
	Store  models.SessionStore
	Engine tasks.SyncEngine
}

// NewAPI creates the handler set with the provided dependencies.
func NewAPI(opts APIOpts) *API {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &API{
		config:  opts.Config,
		logger:  opts.Logger,
		issuer:  opts.Issuer,
		flow:    opts.Flow,
		store:   opts.Store,
		engine:  opts.Engine,
		pool:    insights.DefaultPool(),
		pending: make(map[string]pendingState),
	}
}

// Router mounts all routes with the standard middleware stack.
func (a *API) Router() *BasicRouter {
	router := NewBasicRouter()
	router.Use(
		Logging(a.logger),
		CORS(a.config.Server.FrontendURL),
		RateLimit(a.config.Server.RateLimit),
	)

	protect := RequireAuth(a.issuer)

	router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.Root))
	router.Handle(http.MethodGet, "/health", http.HandlerFunc(a.Health))

	router.Handle(http.MethodGet, "/api/dashboard", protect(http.HandlerFunc(a.Dashboard)))
	router.Handle(http.MethodGet, "/api/videos", protect(http.HandlerFunc(a.Videos)))
	router.Handle(http.MethodGet, "/api/categories", http.HandlerFunc(a.Categories))
	router.Handle(http.MethodPost, "/api/sync-youtube-data", protect(http.HandlerFunc(a.Sync)))

	router.Handler(&authRoutes{api: a})
	router.Handle(http.MethodGet, "/api/auth/me", protect(http.HandlerFunc(a.Me)))
	router.Handle(http.MethodPost, "/api/auth/refresh", protect(http.HandlerFunc(a.Refresh)))
	router.Handle(http.MethodPost, "/api/auth/logout", protect(http.HandlerFunc(a.Logout)))

	return router
}

// Pool returns a snapshot of the current generator pool.
func (a *API) Pool() models.NamePool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pool
}

// SetPool replaces the generator pool, normally after a sync.
func (a *API) SetPool(pool models.NamePool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pool = pool
}

// Root answers a service banner.
func (a *API) Root(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "WatchLog Insights API",
		"version": Version,
	})
}

// Health reports liveness and the live session count.
func (a *API) Health(w http.ResponseWriter, req *http.Request) {
	sessions := 0
	if a.store != nil {
		if count, err := a.store.Count(); err == nil {
			sessions = count
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": sessions,
	})
}

// Dashboard serves the aggregated summary for a lookback window.
//
// GET /api/dashboard?days={7|30|90}
func (a *API) Dashboard(w http.ResponseWriter, req *http.Request) {
	days, err := queryInt(req, "days", 30)
	if err != nil || !validWindows[days] {
		writeError(w, http.StatusBadRequest, "days must be one of 7, 30, 90")
		return
	}

	generator := insights.NewGenerator(a.Pool(), nil)
	summary := insights.Analyze(generator.Generate(days), days)

	writeJSON(w, http.StatusOK, summary)
}

// Videos serves raw watch records.
//
// GET /api/videos?days={n}&limit={n}
func (a *API) Videos(w http.ResponseWriter, req *http.Request) {
	days, err := queryInt(req, "days", 30)
	if err != nil || days <= 0 {
		writeError(w, http.StatusBadRequest, "days must be a positive integer")
		return
	}

	limit, err := queryInt(req, "limit", 50)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	generator := insights.NewGenerator(a.Pool(), nil)
	records := generator.Generate(days)
	if len(records) > limit {
		records = records[:limit]
	}

	writeJSON(w, http.StatusOK, records)
}

// Categories serves the current category list.
//
// GET /api/categories
func (a *API) Categories(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, a.Pool().Categories)
}

// Sync triggers an external fetch and seeds the generator pool.
//
// POST /api/sync-youtube-data
func (a *API) Sync(w http.ResponseWriter, req *http.Request) {
	claims, ok := ClaimsFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	session, err := a.store.Get(claims.Sid)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "session expired, log in again")
		return
	}

	if a.engine == nil {
		writeError(w, http.StatusServiceUnavailable, "sync engine not configured")
		return
	}

	result, err := a.engine.Sync(req.Context(), nil, session.AccessToken)
	if err != nil {
		a.logger.Error("sync failed", "error", err)
		writeError(w, http.StatusInternalServerError, "sync unavailable")
		return
	}

	if result.Status != models.SyncError {
		a.SetPool(result.Pool)
	}

	writeJSON(w, http.StatusOK, result.SyncStatus())
}

// Me serves the authenticated user's profile from the verified claims.
//
// GET /api/auth/me
func (a *API) Me(w http.ResponseWriter, req *http.Request) {
	claims, ok := ClaimsFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	writeJSON(w, http.StatusOK, models.UserProfile{
		ID:      claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	})
}

// Refresh rotates the session's Google access token.
//
// POST /api/auth/refresh
func (a *API) Refresh(w http.ResponseWriter, req *http.Request) {
	claims, ok := ClaimsFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	session, err := a.store.Get(claims.Sid)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "session expired, log in again")
		return
	}

	token, err := a.flow.Refresh(req.Context(), session.RefreshToken)
	if err != nil {
		a.logger.Warn("token refresh failed", "error", err)
		writeError(w, http.StatusUnauthorized, "token refresh failed")
		return
	}

	session.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		session.RefreshToken = token.RefreshToken
	}
	session.TokenExpiry = token.Expiry
	if err := a.store.Update(session); err != nil {
		a.logger.Error("failed to persist refreshed session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token.AccessToken,
		"expires_at":   token.Expiry,
	})
}

// Logout deletes the server-side session; the JWT becomes useless for
// protected data even before it expires.
//
// POST /api/auth/logout
func (a *API) Logout(w http.ResponseWriter, req *http.Request) {
	claims, ok := ClaimsFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	if err := a.store.Delete(claims.Sid); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes {"detail": msg}, the error shape clients expect.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func queryInt(req *http.Request, key string, fallback int) (int, error) {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
