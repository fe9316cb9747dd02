package middleware

import (
	"strings"

	"mandi-core/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds the browser origin policy for the gateway.
type CORSConfig struct {
	// AllowedOrigins are exact origins (scheme://host[:port]) granted
	// credentialed access. Localhost origins are always allowed so a web
	// dashboard under development can talk to a local core.
	AllowedOrigins []string
}

// CORS allows credentialed requests from the configured origins. The session
// rides a cookie, so the allowed origin is echoed back verbatim; a wildcard
// would make the browser drop credentials.
func CORS(cfg CORSConfig) fiber.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		// Same-origin requests and non-browser clients carry no Origin.
		if origin == "" {
			return c.Next()
		}
		if !allowed[strings.ToLower(origin)] && !isLocalOrigin(origin) {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, "+RequestIDHeader)
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") ||
		strings.HasPrefix(origin, "http://127.0.0.1:")
}
