// Package config resolves runtime settings from defaults, an optional .env
// file and COURTSIDE_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	// ServerURL is the base URL of the triage server.
	ServerURL string

	// Timeout bounds one round trip to the server. Default: 30s.
	Timeout time.Duration

	// DBPath is the event log database. Empty resolves to the XDG data dir.
	DBPath string

	// LogDir receives the rotated log, trace and metric files.
	LogDir string

	// WebAddr is the listen address for `serve`.
	WebAddr string

	// SDKKey authenticates the motion-assessment engine.
	SDKKey string

	// CameraDevice is checked for read access before the engine boots.
	// Empty skips the check.
	CameraDevice string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		Timeout:   30 * time.Second,
		LogDir:    defaultLogDir(),
		WebAddr:   "127.0.0.1:8080",
	}
}

// Load reads .env (if present) and then the environment over the defaults.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.ServerURL = firstNonEmpty(env("COURTSIDE_SERVER_URL"), cfg.ServerURL)
	cfg.DBPath = firstNonEmpty(env("COURTSIDE_DB"), cfg.DBPath)
	cfg.LogDir = firstNonEmpty(env("COURTSIDE_LOG_DIR"), cfg.LogDir)
	cfg.WebAddr = firstNonEmpty(env("COURTSIDE_WEB_ADDR"), cfg.WebAddr)
	cfg.SDKKey = firstNonEmpty(env("COURTSIDE_SDK_KEY"), cfg.SDKKey)
	cfg.CameraDevice = firstNonEmpty(env("COURTSIDE_CAMERA_DEVICE"), cfg.CameraDevice)

	if t := env("COURTSIDE_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("COURTSIDE_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// Validate checks the settings every command needs.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("server url %q: missing host", c.ServerURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func defaultLogDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "courtside")
	}
	return "logs"
}
