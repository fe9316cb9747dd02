package health

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func checkHealth(t *testing.T, h *Handlers) map[string]interface{} {
	t.Helper()
	app := fiber.New()
	app.Get("/health", h.JSON)
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	return data
}

func TestHealthNothingConfigured(t *testing.T) {
	data := checkHealth(t, &Handlers{})
	assert.Equal(t, "not configured", data["database"])
	assert.Equal(t, "not configured", data["redis"])
}

func TestHealthAllUp(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	data := checkHealth(t, &Handlers{DB: db, Rdb: rdb})
	assert.Equal(t, "ok", data["database"])
	assert.Equal(t, "ok", data["redis"])
}

func TestHealthRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()
	t.Cleanup(func() { rdb.Close() })

	data := checkHealth(t, &Handlers{Rdb: rdb})
	assert.Equal(t, "down", data["redis"])
}
