package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
)

func testSession(id string, expiresAt time.Time) *models.Session {
	return &models.Session{
		ID:           id,
		UserID:       "user-1",
		Email:        "viewer@example.com",
		Name:         "Test Viewer",
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		TokenExpiry:  time.Now().Add(time.Hour),
		ExpiresAt:    expiresAt,
	}
}

// storeFactories builds each SessionStore implementation fresh per subtest so
// both are exercised against the same contract.
func storeFactories(t *testing.T) map[string]func(t *testing.T) models.SessionStore {
	return map[string]func(t *testing.T) models.SessionStore{
		"memory": func(t *testing.T) models.SessionStore {
			return NewMemorySessionStore()
		},
		"sqlite": func(t *testing.T) models.SessionStore {
			db, err := shared.NewDatabase(":memory:")
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			t.Cleanup(func() { db.Close() })

			if err := shared.RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations: %v", err)
			}
			return NewSQLiteSessionStore(db)
		},
	}
}

func TestSessionStores(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("create and get round trip", func(t *testing.T) {
				store := newStore(t)
				session := testSession("s1", future)

				if err := store.Create(session); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				got, err := store.Get("s1")
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if got.Email != "viewer@example.com" {
					t.Errorf("expected email viewer@example.com, got %s", got.Email)
				}
				if got.RefreshToken != "1//refresh" {
					t.Errorf("expected refresh token preserved, got %s", got.RefreshToken)
				}
			})

			t.Run("get missing session", func(t *testing.T) {
				store := newStore(t)
				if _, err := store.Get("nope"); !errors.Is(err, shared.ErrSessionNotFound) {
					t.Errorf("expected ErrSessionNotFound, got %v", err)
				}
			})

			t.Run("update replaces token fields", func(t *testing.T) {
				store := newStore(t)
				session := testSession("s1", future)
				if err := store.Create(session); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				session.AccessToken = "ya29.rotated"
				if err := store.Update(session); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				got, err := store.Get("s1")
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if got.AccessToken != "ya29.rotated" {
					t.Errorf("expected rotated access token, got %s", got.AccessToken)
				}
			})

			t.Run("update missing session", func(t *testing.T) {
				store := newStore(t)
				if err := store.Update(testSession("nope", future)); !errors.Is(err, shared.ErrSessionNotFound) {
					t.Errorf("expected ErrSessionNotFound, got %v", err)
				}
			})

			t.Run("delete removes the session", func(t *testing.T) {
				store := newStore(t)
				if err := store.Create(testSession("s1", future)); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				if err := store.Delete("s1"); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if _, err := store.Get("s1"); !errors.Is(err, shared.ErrSessionNotFound) {
					t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
				}
			})

			t.Run("purge removes only expired sessions", func(t *testing.T) {
				store := newStore(t)
				if err := store.Create(testSession("live", future)); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if err := store.Create(testSession("stale", time.Now().Add(-time.Hour))); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				removed, err := store.Purge(time.Now())
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if removed != 1 {
					t.Errorf("expected 1 purged session, got %d", removed)
				}

				if _, err := store.Get("live"); err != nil {
					t.Errorf("expected live session to survive, got %v", err)
				}
				if count, _ := store.Count(); count != 1 {
					t.Errorf("expected count 1, got %d", count)
				}
			})
		})
	}
}
