package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PY_BACKEND_URL", "PREDICT_TIMEOUT", "UPLOAD_DIR", "PREDICT_FIELD_NAME", "PREDICT_MAX_UPLOAD_BYTES"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/predict", cfg.UpstreamURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "file", cfg.FieldName)
	assert.Equal(t, 10<<20, cfg.MaxUploadBytes)
	assert.Equal(t, os.TempDir(), cfg.UploadDir)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PY_BACKEND_URL", "https://ml.example.com/v1/predict")
	t.Setenv("PREDICT_TIMEOUT", "5s")
	t.Setenv("UPLOAD_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, dir, cfg.UploadDir)
	assert.Equal(t, "https://ml.example.com/v1/health", cfg.HealthURL())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{UpstreamURL: "http://localhost:8000/predict", Timeout: time.Second, FieldName: "file", MaxUploadBytes: 1}
	}

	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"relative url", func(c *Config) { c.UpstreamURL = "/predict" }},
		{"bad scheme", func(c *Config) { c.UpstreamURL = "ftp://host/predict" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"empty field", func(c *Config) { c.FieldName = "" }},
		{"zero size", func(c *Config) { c.MaxUploadBytes = 0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, valid().Validate())
}

func TestHealthURL(t *testing.T) {
	cfg := &Config{UpstreamURL: "http://localhost:8000/predict?x=1"}
	assert.Equal(t, "http://localhost:8000/health", cfg.HealthURL())
}
