package main

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"chess-fen/pkg/client"
)

type commandContext struct {
	configDirFlag *string
	serverFlag    *string

	once    sync.Once
	cfg     cliConfig
	dir     string
	ctrl    *client.Controller
	initErr error
}

func newCommandContext(configDirFlag, serverFlag *string) *commandContext {
	return &commandContext{configDirFlag: configDirFlag, serverFlag: serverFlag}
}

func (c *commandContext) configDir() (string, error) {
	if c.configDirFlag != nil && strings.TrimSpace(*c.configDirFlag) != "" {
		return strings.TrimSpace(*c.configDirFlag), nil
	}
	return defaultConfigDir()
}

func (c *commandContext) sessions() sessionStore {
	return sessionStore{path: filepath.Join(c.dir, "session")}
}

// controller loads config and the saved session once, then resolves the session state.
func (c *commandContext) controller(ctx context.Context) (*client.Controller, error) {
	c.once.Do(func() {
		dir, err := c.configDir()
		if err != nil {
			c.initErr = err
			return
		}
		c.dir = dir

		cfg, err := loadConfig(filepath.Join(dir, "config.toml"))
		if err != nil {
			c.initErr = err
			return
		}
		if c.serverFlag != nil && *c.serverFlag != "" {
			cfg.ServerURL = *c.serverFlag
		}
		c.cfg = cfg

		token, err := c.sessions().load()
		if err != nil {
			c.initErr = err
			return
		}
		ctrl, err := client.New(cfg.ServerURL,
			client.WithCookieName(cfg.CookieName),
			client.WithToken(token),
		)
		if err != nil {
			c.initErr = err
			return
		}
		if token != "" {
			if err := ctrl.Init(ctx); err != nil {
				c.initErr = err
				return
			}
		}
		c.ctrl = ctrl
	})
	return c.ctrl, c.initErr
}

// persist writes whatever token the controller holds now, clearing it after a logout or rejection.
func (c *commandContext) persist() error {
	if c.ctrl == nil {
		return nil
	}
	return c.sessions().save(c.ctrl.Token())
}

func (c *commandContext) requireSession(ctx context.Context) (*client.Controller, error) {
	ctrl, err := c.controller(ctx)
	if err != nil {
		return nil, err
	}
	if ctrl.State() != client.StateAuthenticated {
		_ = c.persist()
		return nil, client.ErrNotAuthenticated
	}
	return ctrl, nil
}
