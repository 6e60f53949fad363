package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Google   GoogleConfig   `toml:"google"`
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string  `toml:"host"`
	Port        int     `toml:"port"`
	FrontendURL string  `toml:"frontend_url"` // CORS origin for the browser frontend
	RateLimit   float64 `toml:"rate_limit"`   // Requests per second per server
}

// GoogleConfig contains Google OAuth2 credentials.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// AuthConfig contains JWT and session settings.
type AuthConfig struct {
	JWTSecret      string `toml:"jwt_secret"`
	TokenTTLDays   int    `toml:"token_ttl_days"`
	SessionTTLDays int    `toml:"session_ttl_days"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// Addr returns the host:port listen address for the API server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv overlays secrets from the environment onto the config.
//
// A .env file at envPath is loaded first when present (missing files are not
// an error so the service runs from real environment variables alone).
// Recognized variables: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET,
// OAUTH2_REDIRECT_URI, JWT_SECRET_KEY, FRONTEND_URL.
func LoadEnv(config *Config, envPath string) {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		config.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		config.Google.ClientSecret = v
	}
	if v := os.Getenv("OAUTH2_REDIRECT_URI"); v != "" {
		config.Google.RedirectURI = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		config.Server.FrontendURL = v
	}
}
