package di

import (
	"context"
	"time"

	"chess-fen/internal/shared/accesslog"
	"chess-fen/internal/shared/middleware"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host             string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port             string        `env:"SERVER_PORT" envDefault:"3000"`
	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Behind a reverse proxy, client IPs come from ProxyHeader but only on
	// connections from TrustedProxies.
	ProxyHeader    string   `env:"PROXY_HEADER"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewApp builds the fiber app with the shared middleware chain and all module routes.
// access may be nil to skip access logging.
func NewApp(c *Container, cfg *ServerConfig, access *zap.Logger) *fiber.App {
	bodyLimit := fiber.DefaultBodyLimit
	if c.PredictConfig != nil && c.PredictConfig.MaxUploadBytes > bodyLimit {
		bodyLimit = c.PredictConfig.MaxUploadBytes
	}

	app := fiber.New(fiber.Config{
		AppName:      "chess-fen relay",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: middleware.ErrorHandler(c.Logger),

		ProxyHeader:             cfg.ProxyHeader,
		EnableTrustedProxyCheck: cfg.ProxyHeader != "",
		TrustedProxies:          cfg.TrustedProxies,
	})

	// access log sits outside recover so panics are logged with their final status
	if access != nil {
		app.Use(accesslog.New(access))
	}
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.PropagateRequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(ctx.UserContext(), 5*time.Second)
		defer cancel()

		if err := c.HealthCheck(healthCtx); err != nil {
			c.Logger.WithError(err).Error("health check failed")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
			})
		}
		return ctx.JSON(fiber.Map{
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
		})
	})

	c.RegisterRoutes(app)
	return app
}
