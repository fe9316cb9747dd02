package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed on every response so a client can quote the id
// when reporting a failed sync.
const RequestIDHeader = "X-Request-Id"

const requestIDLocal = "request_id"

// RequestID tags each request with a correlation id. An id supplied by the
// caller is kept, so a client-side retry stays correlated with its first
// attempt; otherwise a fresh one is minted.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Locals(requestIDLocal, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// GetRequestID returns the correlation id assigned to this request.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDLocal).(string); ok {
		return id
	}
	return ""
}
