package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/watchlog/internal/auth"
	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/repositories"
	"github.com/desertthunder/watchlog/internal/server"
	"github.com/desertthunder/watchlog/internal/services"
	"github.com/desertthunder/watchlog/internal/shared"
	"github.com/desertthunder/watchlog/internal/tasks"
	"github.com/urfave/cli/v3"
)

// purgeInterval is how often expired sessions are swept from the store.
const purgeInterval = time.Hour

// Serve starts the REST API server and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = int(port)
	}

	store, cleanup, err := r.buildStore(config, cmd.Bool("memory"))
	if err != nil {
		return err
	}
	defer cleanup()

	flow, err := auth.NewFlow(config.Google)
	if err != nil {
		return fmt.Errorf("failed to configure OAuth: %w", err)
	}

	youtube := services.NewYouTubeService("", r.httpClient)

	api := server.NewAPI(server.APIOpts{
		Config: config,
		Logger: r.logger,
		Issuer: auth.NewIssuer(config.Auth.JWTSecret, config.Auth.TokenTTLDays),
		Flow:   flow,
		Store:  store,
		Engine: tasks.NewProfileSync(youtube, ""),
	})

	srv := &http.Server{
		Addr:              config.Server.Addr(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go r.purgeSessions(ctx, store)

	errChan := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file when present, falling back to the
// runner's config, and overlays environment variables either way.
func (r *Runner) loadConfig(path string) *shared.Config {
	config := r.config
	if _, err := os.Stat(path); err == nil {
		if loaded, err := shared.LoadConfig(path); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	shared.LoadEnv(config, ".env")
	return config
}

// buildStore picks the session store. SQLite is the default; --memory keeps
// sessions in process for development.
func (r *Runner) buildStore(config *shared.Config, inMemory bool) (models.SessionStore, func(), error) {
	if inMemory {
		r.logger.Info("using in-memory session store")
		return repositories.NewMemorySessionStore(), func() {}, nil
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info("using SQLite session store", "path", config.Database.Path)
	return repositories.NewSQLiteSessionStore(db), func() { db.Close() }, nil
}

func (r *Runner) purgeSessions(ctx context.Context, store models.SessionStore) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.Purge(time.Now())
			if err != nil {
				r.logger.Warn("session purge failed", "error", err)
				continue
			}
			if removed > 0 {
				r.logger.Info("purged expired sessions", "count", removed)
			}
		}
	}
}
