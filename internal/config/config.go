package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	DBDriver      string `yaml:"db_driver"`
	DSN           string `yaml:"dsn"`
	SessionSecret string `yaml:"session_secret"`
	CookieName    string `yaml:"cookie_name"`
	CorsOrigin    string `yaml:"cors_origin"`
	LogLevel      string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		ListenAddr:    ":8000",
		DBDriver:      "sqlite3",
		DSN:           "reminders.sqlite",
		SessionSecret: "dev-secret-change-me",
		CookieName:    "reminders_session",
		CorsOrigin:    "http://localhost:8000",
		LogLevel:      "info",
	}
}

// Load returns the defaults overlaid with environment variables. The config
// file named by REMINDERS_CONFIG, if set, is applied between the two.
func Load() *Config {
	cfg := defaults()
	if path := os.Getenv("REMINDERS_CONFIG"); path != "" {
		if fileCfg, err := LoadFile(path); err == nil {
			cfg = fileCfg
			return cfg
		}
	}
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML config file over the defaults, then applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overlay := map[string]*string{
		"REMINDERS_ADDR":           &c.ListenAddr,
		"REMINDERS_DB_DRIVER":      &c.DBDriver,
		"REMINDERS_DSN":            &c.DSN,
		"REMINDERS_SESSION_SECRET": &c.SessionSecret,
		"REMINDERS_COOKIE_NAME":    &c.CookieName,
		"REMINDERS_CORS_ORIGIN":    &c.CorsOrigin,
		"REMINDERS_LOG_LEVEL":      &c.LogLevel,
	}
	for key, field := range overlay {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}
