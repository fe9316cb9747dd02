package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one line per completed request: method, path, status,
// duration, correlation id, and the session role when one is present. Errors
// that escape the handler are logged here before ErrorHandler shapes the
// response.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		evt := log.Info()
		if err != nil {
			evt = log.Error().Err(err)
		}
		evt = evt.
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start))
		if role := GetUserRole(c); role != "" {
			evt = evt.Str("role", role)
		}
		evt.Msg("Request completed")
		return err
	}
}
