package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the gateway's environment-driven settings. Defaults point at
// the local development backend.
type Config struct {
	BaseURL        string        `envconfig:"API_URL" default:"http://localhost:8001"`
	RequestTimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	FallbackPath   string        `envconfig:"FALLBACK_PATH" default:"/api/health/fallback"`
}

// LoadConfig reads SAI_API_URL, SAI_API_TIMEOUT and SAI_FALLBACK_PATH from
// the environment, falling back to defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("sai", &cfg); err != nil {
		return Config{}, fmt.Errorf("process gateway env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("api base url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("api base url host is required")
	}
	if c.FallbackPath == "" {
		return errors.New("fallback path is required")
	}
	return nil
}
