package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the upload relay settings.
type Config struct {
	// UpstreamURL is the prediction endpoint that receives the multipart upload.
	UpstreamURL string        `env:"PY_BACKEND_URL" envDefault:"http://localhost:8000/predict"`
	Timeout     time.Duration `env:"PREDICT_TIMEOUT" envDefault:"30s"`

	// UploadDir holds uploads while they are relayed. Empty means the OS temp dir.
	UploadDir      string `env:"UPLOAD_DIR"`
	FieldName      string `env:"PREDICT_FIELD_NAME" envDefault:"file"`
	MaxUploadBytes int    `env:"PREDICT_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load predict configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.UpstreamURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("py_backend_url must be an absolute http(s) URL, got %q", c.UpstreamURL)
	}
	if c.Timeout <= 0 {
		return errors.New("predict_timeout must be positive")
	}
	if c.FieldName == "" {
		return errors.New("predict_field_name is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("predict_max_upload_bytes must be positive")
	}
	if c.UploadDir == "" {
		c.UploadDir = os.TempDir()
	}
	return nil
}

// HealthURL is the upstream's /health, a sibling of the predict path.
func (c *Config) HealthURL() string {
	u, err := url.Parse(c.UpstreamURL)
	if err != nil {
		return ""
	}
	u.Path = path.Join(path.Dir(u.Path), "health")
	u.RawQuery = ""
	return u.String()
}
