package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the expected key. If empty, the middleware lets all requests through.
	ApiKey string
	// Header is the request header carrying the key. Defaults to "X-API-Key".
	Header string
}

// New creates a middleware that rejects requests missing the configured API key.
func New(cfg Config) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = "X-API-Key"
	}

	return func(c *fiber.Ctx) error {
		// No key configured means the instance runs open (local setups).
		if cfg.ApiKey == "" {
			return c.Next()
		}

		got := c.Get(header)
		if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		return c.Next()
	}
}
