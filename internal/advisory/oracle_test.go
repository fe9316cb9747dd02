package advisory

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedAdviceStaysWithinBounds(t *testing.T) {
	o := NewSimulatedOracle(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		advice, err := o.GetAdvice(context.Background(), Request{CropType: "Tomato", QuantityKg: 100})
		require.NoError(t, err)

		base := basePrices["tomato"]
		assert.GreaterOrEqual(t, advice.CurrentPrice, round2(base*0.90))
		assert.LessOrEqual(t, advice.CurrentPrice, round2(base*1.10))
		// 24h moves at most ±15% off current, 48h at most ±10% off 24h;
		// allow a cent of rounding slack at each step
		assert.GreaterOrEqual(t, advice.Predicted24h, advice.CurrentPrice*0.85-0.01)
		assert.LessOrEqual(t, advice.Predicted24h, advice.CurrentPrice*1.15+0.01)
		assert.GreaterOrEqual(t, advice.Predicted48h, advice.Predicted24h*0.90-0.01)
		assert.LessOrEqual(t, advice.Predicted48h, advice.Predicted24h*1.10+0.01)
		assert.GreaterOrEqual(t, advice.Confidence, 0.75)
		assert.LessOrEqual(t, advice.Confidence, 0.98)
	}
}

func TestRecommendationMatchesPredictedMove(t *testing.T) {
	o := NewSimulatedOracle(rand.NewSource(7))
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		advice, err := o.GetAdvice(context.Background(), Request{CropType: "Onion", QuantityKg: 50})
		require.NoError(t, err)
		seen[advice.Recommendation] = true

		switch advice.Recommendation {
		case "HOLD":
			assert.Greater(t, advice.Predicted24h, advice.CurrentPrice*1.05)
		case "SELL NOW":
			assert.Less(t, advice.Predicted24h, advice.CurrentPrice*0.95)
		case "SELL":
			assert.GreaterOrEqual(t, advice.Predicted24h, advice.CurrentPrice*0.95)
			assert.LessOrEqual(t, advice.Predicted24h, advice.CurrentPrice*1.05)
		default:
			t.Fatalf("unexpected recommendation %q", advice.Recommendation)
		}
		assert.NotEmpty(t, advice.ReasonText)
	}
	assert.True(t, seen["HOLD"], "500 samples should hit every branch")
	assert.True(t, seen["SELL NOW"])
	assert.True(t, seen["SELL"])
}

func TestUnknownCropUsesDefaultBasePrice(t *testing.T) {
	o := NewSimulatedOracle(rand.NewSource(1))
	advice, err := o.GetAdvice(context.Background(), Request{CropType: "Dragonfruit", QuantityKg: 10})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, advice.CurrentPrice, round2(defaultBasePrice*0.90))
	assert.LessOrEqual(t, advice.CurrentPrice, round2(defaultBasePrice*1.10))
}

func TestCropLookupIsCaseInsensitive(t *testing.T) {
	o := NewSimulatedOracle(rand.NewSource(1))
	advice, err := o.GetAdvice(context.Background(), Request{CropType: "  GREEN chili  ", QuantityKg: 10})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, advice.CurrentPrice, round2(65*0.90))
	assert.LessOrEqual(t, advice.CurrentPrice, round2(65*1.10))
}

func TestMonetaryOutputsRoundedToTwoDecimals(t *testing.T) {
	o := NewSimulatedOracle(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		advice, err := o.GetAdvice(context.Background(), Request{CropType: "Potato", QuantityKg: 5})
		require.NoError(t, err)
		assert.Equal(t, round2(advice.CurrentPrice), advice.CurrentPrice)
		assert.Equal(t, round2(advice.Predicted24h), advice.Predicted24h)
		assert.Equal(t, round2(advice.Predicted48h), advice.Predicted48h)
		assert.Equal(t, round2(advice.Confidence), advice.Confidence)
	}
}

func TestGetAdviceHonoursCancelledContext(t *testing.T) {
	o := NewSimulatedOracle(rand.NewSource(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.GetAdvice(ctx, Request{CropType: "Tomato", QuantityKg: 5})
	assert.Error(t, err)
}
