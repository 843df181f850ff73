// Package ratelimit throttles credential endpoints per client IP.
package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Config controls the sliding window. A nil Storage keeps counters in process memory.
type Config struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage
}

// New creates the rate limiting middleware. Max <= 0 disables limiting.
func New(cfg Config) fiber.Handler {
	if cfg.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:               cfg.Max,
		Expiration:        cfg.Window,
		Storage:           cfg.Storage,
		LimiterMiddleware: limiter.SlidingWindow{},
		// c.IP reads ProxyHeader only when the app is configured with one.
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}
