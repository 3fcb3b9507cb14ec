// Package dashboard implements the standalone analytics dashboard. It is
// entirely decoupled from the API server: authentication runs against a
// static YAML credential file rather than the users table, and the chart
// is rendered from a fixed in-memory dataset rather than the live store.
package dashboard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Credential is one entry in the static credential file. Passwords are
// stored as bcrypt hashes; the file never contains plaintext.
type Credential struct {
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"`
}

// CookieConfig controls the signed session cookie the dashboard issues
// after a successful login.
type CookieConfig struct {
	Name       string `yaml:"name"`
	Key        string `yaml:"key"`
	ExpiryDays int    `yaml:"expiry_days"`
}

// Config is the parsed dashboard configuration file.
type Config struct {
	Port        string                `yaml:"port"`
	Credentials map[string]Credential `yaml:"credentials"` // keyed by username
	Cookie      CookieConfig          `yaml:"cookie"`
}

// LoadConfig reads and validates the YAML credential file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Credentials) == 0 {
		return Config{}, fmt.Errorf("config %s: no credentials defined", path)
	}
	if cfg.Cookie.Name == "" || cfg.Cookie.Key == "" {
		return Config{}, fmt.Errorf("config %s: cookie name and key are required", path)
	}
	if cfg.Cookie.ExpiryDays <= 0 {
		cfg.Cookie.ExpiryDays = 30
	}
	if cfg.Port == "" {
		cfg.Port = "8501"
	}
	return cfg, nil
}
