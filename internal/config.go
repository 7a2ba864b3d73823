package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes for the ops HTTP API.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Telegram TelegramConfig    `yaml:"telegram"`
	Ollama   OllamaConfig      `yaml:"ollama"`
	Data     DataConfig        `yaml:"data"`
	Index    IndexConfig       `yaml:"index"`
	Auth     AuthConfig        `yaml:"auth"`
	Sessions SessionsConfig    `yaml:"sessions"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Telegram.Validate(); err != nil {
		return err
	}
	if err := c.Ollama.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Index.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for the ops API.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// TelegramConfig holds the bot transport configuration.
type TelegramConfig struct {
	Token            string `yaml:"token"`
	AuthorizedUserID int64  `yaml:"authorized_user_id"`
	PollTimeout      int    `yaml:"poll_timeout"` // seconds
}

// Validate validates the Telegram configuration.
func (c *TelegramConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.AuthorizedUserID, validation.Required),
	)
}

// OllamaConfig holds the language-model endpoint configuration.
type OllamaConfig struct {
	Host    string `yaml:"host"`
	Model   string `yaml:"model"`
	Timeout int    `yaml:"timeout"` // seconds per generation request
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *OllamaConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Validate validates the Ollama configuration.
func (c *OllamaConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Model, validation.Required),
	)
}

// DataConfig holds the path to the base data directory.
type DataConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// IndexConfig holds the SQLite search index configuration.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds ops HTTP API authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// SessionsConfig bounds the lifetime of idle conversational sessions.
type SessionsConfig struct {
	IdleTTLMinutes  int `yaml:"idle_ttl_minutes"`
	EvictionMinutes int `yaml:"eviction_minutes"`
}

// IdleTTL returns the idle TTL as a duration.
func (c *SessionsConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLMinutes) * time.Minute
}

// EvictionInterval returns the eviction loop interval as a duration.
func (c *SessionsConfig) EvictionInterval() time.Duration {
	return time.Duration(c.EvictionMinutes) * time.Minute
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Telegram: TelegramConfig{
			PollTimeout: 30,
		},
		Ollama: OllamaConfig{
			Host:    "http://localhost:11434",
			Model:   "gemma3",
			Timeout: 60,
		},
		Data: DataConfig{
			Path: "./data",
		},
		Index: IndexConfig{
			Path: "./data/index.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Sessions: SessionsConfig{
			IdleTTLMinutes:  120,
			EvictionMinutes: 10,
		},
	}
}
