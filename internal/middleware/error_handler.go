package middleware

import (
	"errors"

	"mandi-core/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler shapes any error that escapes a handler into the standard
// envelope. Session and hub errors are mapped to statuses at the handler
// layer, so anything arriving here is either a Fiber routing error (404,
// method not allowed) or a programming error; the latter is logged with its
// correlation id and hidden behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("path", c.Path()).
			Msg("Unhandled error")
	}

	return response.Error(c, message, code, map[string]interface{}{
		"request_id": GetRequestID(c),
	})
}
