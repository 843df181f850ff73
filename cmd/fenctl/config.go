package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const defaultServerURL = "http://localhost:3000"

// cliConfig is ~/.config/fenctl/config.toml.
type cliConfig struct {
	ServerURL  string `toml:"server_url"`
	CookieName string `toml:"cookie_name"`
}

func defaultConfig() cliConfig {
	return cliConfig{ServerURL: defaultServerURL, CookieName: "token"}
}

func defaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "fenctl"), nil
}

// loadConfig reads path, falling back to defaults when the file does not exist.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "token"
	}
	return cfg, nil
}

func saveConfig(path string, cfg cliConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// sessionStore persists the session token between invocations.
type sessionStore struct {
	path string
}

func (s sessionStore) load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s sessionStore) save(token string) error {
	if token == "" {
		return s.clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s sessionStore) clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
