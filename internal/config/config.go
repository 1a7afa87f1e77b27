package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	LocalesDir      string
	ReferenceLocale string
	CatalogFile     string
	OverridesDir    string
	DatabaseURL     string
	MigrationsPath  string
	Workers         int
	LogLevel        zapcore.Level
}

// Load reads configuration from the environment, after an optional .env
// file, and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when the variables come from the environment (CI, shell).
	}

	cfg := &Config{
		LocalesDir:      os.Getenv("LOCALES_DIR"),
		ReferenceLocale: os.Getenv("REFERENCE_LOCALE"),
		CatalogFile:     os.Getenv("CATALOG_FILE"),
		OverridesDir:    os.Getenv("OVERRIDES_DIR"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  os.Getenv("MIGRATIONS_PATH"),
	}

	workers := strings.TrimSpace(os.Getenv("WORKERS"))
	if workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("config: WORKERS must be an integer (%q): %w", workers, err)
		}
		cfg.Workers = n
	}

	level := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("config: LOG_LEVEL invalid (%q): %w", level, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate fills defaults and checks the loaded values.
func (c *Config) validate() error {
	if strings.TrimSpace(c.LocalesDir) == "" {
		c.LocalesDir = "src/i18n/locales"
	}

	if strings.TrimSpace(c.ReferenceLocale) == "" {
		c.ReferenceLocale = "en"
	}
	if err := CheckReference(c.ReferenceLocale); err != nil {
		return fmt.Errorf("config: REFERENCE_LOCALE %w", err)
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}

	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: WORKERS must be positive (got %d)", c.Workers)
	}

	if c.DatabaseURL == "" {
		return nil
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}

	return nil
}

// CheckReference rejects reference codes that would resolve outside the
// locales directory.
func CheckReference(code string) error {
	if strings.ContainsAny(code, `/\`) || strings.Contains(code, "..") {
		return fmt.Errorf("must be a locale code, not a path (%q)", code)
	}
	return nil
}
