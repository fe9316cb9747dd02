package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestID())
	app.Use(RequestLogger())
	return app
}

func TestRequestIDMintedWhenAbsent(t *testing.T) {
	app := newTestApp()
	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = GetRequestID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(seen)
	assert.NoError(t, err, "minted id is a uuid")
	assert.Equal(t, seen, resp.Header.Get(RequestIDHeader), "id echoed on the response")
}

func TestRequestIDKeepsCallerSuppliedID(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "retry-7f3a")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "retry-7f3a", resp.Header.Get(RequestIDHeader))
}

func TestRequestIDReplacesOversizedID(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	resp, err := app.Test(req)
	require.NoError(t, err)
	got := resp.Header.Get(RequestIDHeader)
	_, err = uuid.Parse(got)
	assert.NoError(t, err, "oversized inbound id is replaced")
}

func TestErrorHandlerShapesFiberErrors(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/no-such-route", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "error", out["status"])
	errObj, _ := out["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.EqualValues(t, fiber.StatusNotFound, errObj["statusCode"])
	details, _ := errObj["details"].(map[string]interface{})
	require.NotNil(t, details)
	assert.NotEmpty(t, details["request_id"], "error replies carry the correlation id")
}

func TestErrorHandlerHidesOpaqueErrors(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	errObj, _ := out["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "Internal Server Error", errObj["message"], "internal detail never leaks")
}

func corsApp(origins ...string) *fiber.App {
	app := fiber.New()
	app.Use(CORS(CORSConfig{AllowedOrigins: origins}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	app := corsApp("https://app.example.org")
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://app.example.org")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example.org", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
}

func TestCORSAlwaysAllowsLocalhost(t *testing.T) {
	app := corsApp()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	app := corsApp("https://app.example.org")
	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "https://app.example.org")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), "PUT")
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	app := corsApp("https://app.example.org")
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORSIgnoresRequestsWithoutOrigin(t *testing.T) {
	app := corsApp("https://app.example.org")
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
