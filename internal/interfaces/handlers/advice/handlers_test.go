package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"mandi-core/internal/advisory"
	"mandi-core/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOracle struct{ err error }

func (o failingOracle) GetAdvice(ctx context.Context, req advisory.Request) (*domain.PriceAdvice, error) {
	return nil, o.err
}

func setupAdviceApp(t *testing.T, oracle advisory.Oracle) *fiber.App {
	h := &Handlers{Client: advisory.NewClient(oracle, 0, 5*time.Second)}
	app := fiber.New()
	app.Post("/price", h.PriceAdvice)
	return app
}

func post(t *testing.T, app *fiber.App, body interface{}) (map[string]interface{}, int) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/price", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return out, resp.StatusCode
}

func TestPriceAdviceSuccess(t *testing.T) {
	app := setupAdviceApp(t, advisory.NewSimulatedOracle(rand.NewSource(1)))
	out, status := post(t, app, map[string]interface{}{"crop_type": "Tomato", "quantity_kg": 100})
	require.Equal(t, fiber.StatusOK, status)

	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	advice, _ := data["advice"].(map[string]interface{})
	require.NotNil(t, advice)
	assert.NotEmpty(t, advice["recommendation"])
	assert.NotEmpty(t, advice["reason_text"])
	assert.Greater(t, advice["current_price"], 0.0)
}

func TestPriceAdviceMissingCropType(t *testing.T) {
	app := setupAdviceApp(t, advisory.NewSimulatedOracle(rand.NewSource(1)))
	_, status := post(t, app, map[string]interface{}{"quantity_kg": 100})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPriceAdviceNonPositiveQuantity(t *testing.T) {
	app := setupAdviceApp(t, advisory.NewSimulatedOracle(rand.NewSource(1)))
	_, status := post(t, app, map[string]interface{}{"crop_type": "Tomato", "quantity_kg": 0})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPriceAdviceTransportFailure(t *testing.T) {
	app := setupAdviceApp(t, failingOracle{err: advisory.ErrTransport})
	_, status := post(t, app, map[string]interface{}{"crop_type": "Tomato", "quantity_kg": 100})
	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestPriceAdviceOpaqueFailure(t *testing.T) {
	app := setupAdviceApp(t, failingOracle{err: errors.New("model exploded")})
	_, status := post(t, app, map[string]interface{}{"crop_type": "Tomato", "quantity_kg": 100})
	assert.Equal(t, fiber.StatusInternalServerError, status)
}
