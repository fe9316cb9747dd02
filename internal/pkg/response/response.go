// Package response defines the one JSON envelope every gateway endpoint
// speaks. Clients switch on the top-level status field, so success and error
// replies are distinct shapes rather than one struct with nullable halves:
// success carries message/data/metadata, error carries a nested error object
// with the HTTP status repeated for clients that cannot read it off the wire.
package response

import "github.com/gofiber/fiber/v2"

type successEnvelope struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

type errorEnvelope struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

type errorBody struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

func succeed(c *fiber.Ctx, code int, message string, data, metadata interface{}) error {
	if metadata == nil {
		metadata = fiber.Map{}
	}
	return c.Status(code).JSON(successEnvelope{
		Status:   "success",
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Success replies 200 with the success envelope.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return succeed(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated replies 201 with the success envelope.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return succeed(c, fiber.StatusCreated, message, data, metadata)
}

// Error replies with the error envelope. details is optional context for the
// client (validation fields, correlation id); nil becomes an empty object so
// consumers never branch on a missing key.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = fiber.Map{}
	}
	return c.Status(statusCode).JSON(errorEnvelope{
		Status: "error",
		Error: errorBody{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized is the 401 every auth guard replies with.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}
