package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "watchlog.db" {
			t.Errorf("expected database path watchlog.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8000 {
			t.Errorf("expected server port 8000, got %d", config.Server.Port)
		}

		if config.Server.FrontendURL != "http://localhost:3000" {
			t.Errorf("expected frontend URL http://localhost:3000, got %s", config.Server.FrontendURL)
		}

		if config.Auth.TokenTTLDays != 7 {
			t.Errorf("expected token TTL 7 days, got %d", config.Auth.TokenTTLDays)
		}

		if config.Google.RedirectURI != "http://localhost:8000/api/auth/callback" {
			t.Errorf("unexpected redirect URI %s", config.Google.RedirectURI)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		server := ServerConfig{Host: "localhost", Port: 8000}
		if server.Addr() != "localhost:8000" {
			t.Errorf("unexpected addr %s", server.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[server]
host = "0.0.0.0"
port = 9000
rate_limit = 5.0

[auth]
jwt_secret = "file-secret"
token_ttl_days = 14
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Host != "0.0.0.0" || config.Server.Port != 9000 {
			t.Errorf("unexpected server config %+v", config.Server)
		}
		if config.Auth.JWTSecret != "file-secret" {
			t.Errorf("unexpected jwt secret %q", config.Auth.JWTSecret)
		}

		if _, err := LoadConfig(filepath.Join(tmpDir, "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}

		badPath := filepath.Join(tmpDir, "bad.toml")
		if err := os.WriteFile(badPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write bad config: %v", err)
		}
		if _, err := LoadConfig(badPath); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		t.Run("overlays environment variables", func(t *testing.T) {
			t.Setenv("GOOGLE_CLIENT_ID", "env-client-id")
			t.Setenv("JWT_SECRET_KEY", "env-secret")

			config := DefaultConfig()
			LoadEnv(config, filepath.Join(t.TempDir(), "absent.env"))

			if config.Google.ClientID != "env-client-id" {
				t.Errorf("expected env client id, got %q", config.Google.ClientID)
			}
			if config.Auth.JWTSecret != "env-secret" {
				t.Errorf("expected env secret, got %q", config.Auth.JWTSecret)
			}
		})

		t.Run("loads dotenv file", func(t *testing.T) {
			envPath := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(envPath, []byte("FRONTEND_URL=https://app.example.com\n"), 0644); err != nil {
				t.Fatalf("failed to write .env: %v", err)
			}

			// godotenv does not override variables already in the environment
			os.Unsetenv("FRONTEND_URL")
			t.Cleanup(func() { os.Unsetenv("FRONTEND_URL") })

			config := DefaultConfig()
			LoadEnv(config, envPath)

			if config.Server.FrontendURL != "https://app.example.com" {
				t.Errorf("expected dotenv frontend URL, got %q", config.Server.FrontendURL)
			}
		})

		t.Run("keeps config values when env is empty", func(t *testing.T) {
			os.Unsetenv("GOOGLE_CLIENT_SECRET")

			config := DefaultConfig()
			config.Google.ClientSecret = "from-file"
			LoadEnv(config, filepath.Join(t.TempDir(), "absent.env"))

			if config.Google.ClientSecret != "from-file" {
				t.Errorf("expected file value preserved, got %q", config.Google.ClientSecret)
			}
		})
	})
}
