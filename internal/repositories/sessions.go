package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
)

// SQLiteSessionStore persists sessions in the sessions table.
//
// The schema comes from the embedded migrations in internal/shared; run
// [shared.RunMigrations] before using the store.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a store over an open database connection.
func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// Create inserts a new session.
func (s *SQLiteSessionStore) Create(session *models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, user_id, email, name, picture, access_token, refresh_token, token_expiry, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.Email,
		session.Name,
		session.Picture,
		session.AccessToken,
		session.RefreshToken,
		nullableTime(session.TokenExpiry),
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID.
func (s *SQLiteSessionStore) Get(id string) (*models.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, email, name, picture, access_token, refresh_token, token_expiry, expires_at, created_at
		FROM sessions WHERE id = ?`, id)

	var session models.Session
	var tokenExpiry sql.NullTime
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Email,
		&session.Name,
		&session.Picture,
		&session.AccessToken,
		&session.RefreshToken,
		&tokenExpiry,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if tokenExpiry.Valid {
		session.TokenExpiry = tokenExpiry.Time
	}

	return &session, nil
}

// Update replaces a session's token fields.
func (s *SQLiteSessionStore) Update(session *models.Session) error {
	result, err := s.db.Exec(`
		UPDATE sessions SET access_token = ?, refresh_token = ?, token_expiry = ?, expires_at = ?
		WHERE id = ?`,
		session.AccessToken,
		session.RefreshToken,
		nullableTime(session.TokenExpiry),
		session.ExpiresAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return shared.ErrSessionNotFound
	}

	return nil
}

// Delete removes a session by ID.
func (s *SQLiteSessionStore) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return shared.ErrSessionNotFound
	}

	return nil
}

// Purge removes sessions expired as of now, returning the count removed.
func (s *SQLiteSessionStore) Purge(now time.Time) (int, error) {
	result, err := s.db.Exec("DELETE FROM sessions WHERE expires_at <= ?", now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check purge result: %w", err)
	}

	return int(affected), nil
}

// Count returns the number of live sessions.
func (s *SQLiteSessionStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
