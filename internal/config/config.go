package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOrigin       = "http://localhost:8080"
	DefaultErrorDismiss = 8 * time.Second
	DefaultBaseDelay    = 2 * time.Second
	DefaultHistoryPath  = "cvcoach.db"
	DefaultRetention    = 720 * time.Hour
	DefaultLogFile      = "cvcoach.log"

	// OriginEnv overrides the origin from the config file.
	OriginEnv = "CVCOACH_ORIGIN"
)

// Config is the root configuration for the cvcoach client.
type Config struct {
	Origin       string        `validate:"required,url"`
	HTTPTimeout  time.Duration `validate:"gte=0"` // 0 = no client timeout
	ErrorDismiss time.Duration `validate:"gt=0"`
	Retry        RetryConfig
	History      HistoryConfig
	Log          LogConfig
}

// RetryConfig controls retries of job searches. Uploads are never retried.
type RetryConfig struct {
	MaxRetries int           `validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `validate:"gte=0"`
}

// HistoryConfig controls the local attempt journal.
type HistoryConfig struct {
	Enabled   bool
	Path      string        `validate:"required_if=Enabled true"`
	Retention time.Duration `validate:"gte=0"` // 0 = keep forever
}

// LogConfig controls where logs go while the TUI owns the terminal.
type LogConfig struct {
	File string // empty = discard
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Origin       string           `yaml:"origin"`
	HTTPTimeout  string           `yaml:"http_timeout"`
	ErrorDismiss string           `yaml:"error_dismiss"`
	Retry        rawRetryConfig   `yaml:"retry"`
	History      rawHistoryConfig `yaml:"history"`
	Log          rawLogConfig     `yaml:"log"`
}

type rawRetryConfig struct {
	MaxRetries int    `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawHistoryConfig struct {
	Enabled   *bool  `yaml:"enabled"`
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type rawLogConfig struct {
	File *string `yaml:"file"`
}

var validate = validator.New()

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Origin:       DefaultOrigin,
		ErrorDismiss: DefaultErrorDismiss,
		Retry:        RetryConfig{BaseDelay: DefaultBaseDelay},
		History: HistoryConfig{
			Enabled:   true,
			Path:      DefaultHistoryPath,
			Retention: DefaultRetention,
		},
		Log: LogConfig{File: DefaultLogFile},
	}
	if env := os.Getenv(OriginEnv); env != "" {
		cfg.Origin = env
	}
	return cfg
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// Relative history and log paths are resolved against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.Origin != "" && os.Getenv(OriginEnv) == "" {
		cfg.Origin = raw.Origin
	}

	if cfg.HTTPTimeout, err = parseDuration("http_timeout", raw.HTTPTimeout, 0); err != nil {
		return nil, err
	}
	if cfg.ErrorDismiss, err = parseDuration("error_dismiss", raw.ErrorDismiss, DefaultErrorDismiss); err != nil {
		return nil, err
	}
	cfg.Retry.MaxRetries = raw.Retry.MaxRetries
	if cfg.Retry.BaseDelay, err = parseDuration("retry.base_delay", raw.Retry.BaseDelay, DefaultBaseDelay); err != nil {
		return nil, err
	}
	if raw.History.Enabled != nil {
		cfg.History.Enabled = *raw.History.Enabled
	}
	if raw.History.Path != "" {
		cfg.History.Path = raw.History.Path
	}
	if cfg.History.Retention, err = parseDuration("history.retention", raw.History.Retention, DefaultRetention); err != nil {
		return nil, err
	}
	if raw.Log.File != nil {
		cfg.Log.File = *raw.Log.File
	}

	dir := filepath.Dir(path)
	cfg.History.Path = resolve(dir, cfg.History.Path)
	cfg.Log.File = resolve(dir, cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Retry.MaxRetries > 0 && c.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be positive when retry.max_retries > 0, got %v", c.Retry.BaseDelay)
	}
	return nil
}

func parseDuration(key, s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, s, err)
	}
	return d, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
