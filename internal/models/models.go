// package models defines the data model for the WatchLog Insights service
package models

import (
	"time"
)

// WatchRecord represents one synthetic viewing event.
//
// Records are generated per request and never persisted. JSON field names
// match the public API contract.
type WatchRecord struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelName  string    `json:"channel_name"`
	CategoryID   int       `json:"category_id"`
	CategoryName string    `json:"category_name"`
	WatchMinutes int       `json:"watch_time_minutes"` // Uniform in [5, 120]
	WatchedAt    time.Time `json:"watched_at"`
}

// CategorySummary is one row of the per-category breakdown.
type CategorySummary struct {
	Category   string  `json:"category"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"` // Share of total watch time; 0 when total is 0
}

// ChannelSummary is one row of the channel ranking, sorted descending by minutes.
type ChannelSummary struct {
	Channel string `json:"channel"`
	Minutes int    `json:"minutes"`
}

// DailyPattern holds the total minutes watched on one weekday.
type DailyPattern struct {
	Day     string `json:"day"` // Full weekday name, Monday through Sunday
	Minutes int    `json:"minutes"`
}

// DashboardSummary is the aggregated response served to the dashboard client.
type DashboardSummary struct {
	TotalWatchTime    int               `json:"total_watch_time"`
	DailyAverage      float64           `json:"daily_average"`
	TopCategory       string            `json:"top_category"`
	CategoryBreakdown []CategorySummary `json:"category_breakdown"`
	TopChannels       []ChannelSummary  `json:"top_channels"`
	DailyPattern      []DailyPattern    `json:"daily_pattern"`
}

// Category is a YouTube video category (id + display name).
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NamePool seeds the mock generator with channel and category names.
//
// Pools start from the built-in defaults and are replaced after a successful
// sync with names fetched from the YouTube Data API.
type NamePool struct {
	Channels   []string
	Categories []Category
}

// Sync status values reported by POST /api/sync-youtube-data.
const (
	SyncSuccess        = "success"
	SyncPartialSuccess = "partial_success"
	SyncError          = "error"
)

// SyncStatus is the response body for the sync endpoint.
type SyncStatus struct {
	Status      string `json:"status"` // success, partial_success, or error
	Message     string `json:"message"`
	ChannelName string `json:"channel_name,omitempty"`
	Note        string `json:"note,omitempty"`
}

// UserProfile holds the minimal Google profile carried in JWT claims.
type UserProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Session represents a logged-in user's server-side OAuth state.
//
// The session holds the Google access and refresh tokens so they never travel
// to the client; the client only ever sees the service's own JWT.
type Session struct {
	ID           string
	UserID       string
	Email        string
	Name         string
	Picture      string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time // Expiry of the Google access token
	ExpiresAt    time.Time // Expiry of the session itself
	CreatedAt    time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionStore defines the lifecycle of server-side sessions: created on
// login, looked up per request, deleted on logout, purged on expiry.
type SessionStore interface {
	Create(session *Session) error    // Create inserts a new session
	Get(id string) (*Session, error)  // Get retrieves a session by its ID
	Update(session *Session) error    // Update replaces a session's token fields
	Delete(id string) error           // Delete removes a session by its ID
	Purge(now time.Time) (int, error) // Purge removes expired sessions, returning the count removed
	Count() (int, error)              // Count returns the number of live sessions
}
