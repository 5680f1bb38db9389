// Package config loads and validates the dashboard configuration.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cbmo4ers/coinpulse/pkg/errors"
)

// EnvBaseURL overrides the backend base URL when set.
const EnvBaseURL = "COINPULSE_API_URL"

// DefaultBaseURL is used when neither config nor environment provide one.
const DefaultBaseURL = "http://localhost:5001"

// Config holds every tunable of the dashboard. All fields have working
// defaults; a config file is optional.
type Config struct {
	// BaseURL is the backend API root, without a trailing slash.
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// RefreshSeconds is the shared poll cadence for all feeds.
	RefreshSeconds int `yaml:"refresh_seconds" validate:"required,gte=5"`
	// RequestTimeoutSeconds bounds each backend request.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" validate:"required,gte=1"`
	// MinBackendVersion is the lowest backend semver the client accepts.
	MinBackendVersion string `yaml:"min_backend_version" validate:"required,semver"`
	// TableLimit is the number of rows a table shows before expanding.
	TableLimit int `yaml:"table_limit" validate:"required,gte=1"`
	// BannerLimit caps the rows a scrolling banner cycles through.
	BannerLimit int `yaml:"banner_limit" validate:"required,gte=1"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{
		BaseURL:               DefaultBaseURL,
		RefreshSeconds:        30,
		RequestTimeoutSeconds: 10,
		MinBackendVersion:     "3.0.0",
		TableLimit:            7,
		BannerLimit:           20,
	}

	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.BaseURL = url
	}

	return cfg
}

// Load reads a YAML config file over the defaults and validates the result.
// The environment override for the base URL applies before the file, so an
// explicit file value wins over the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the struct tags with go-playground/validator.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// RefreshInterval returns the poll cadence as a duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// RequestTimeout returns the per-request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
