// Package advisory wraps the pricing oracle: a remote AI endpoint when
// configured, otherwise a simulated oracle with a deterministic shape and
// non-deterministic content.
package advisory

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"

	"mandi-core/internal/domain"
)

// Request is the pricing oracle request contract.
type Request struct {
	CropType    string  `json:"crop_type"`
	QuantityKg  float64 `json:"quantity_kg"`
	Location    string  `json:"location"`
	HarvestDate string  `json:"harvest_date"`
}

// Oracle produces a price recommendation for a crop and quantity.
type Oracle interface {
	GetAdvice(ctx context.Context, req Request) (*domain.PriceAdvice, error)
}

// basePrices is the fixed per-kg reference table for the simulated oracle.
// Lookup is case-insensitive on the trimmed crop name.
var basePrices = map[string]float64{
	"tomato":      25,
	"onion":       35,
	"potato":      18,
	"green chili": 65,
	"chilli":      65,
	"cabbage":     15,
	"cauliflower": 22,
	"carrot":      30,
	"capsicum":    45,
}

const defaultBasePrice = 30.0

// SimulatedOracle fabricates advice around the base-price table. The random
// source is injectable so tests can pin the distribution.
type SimulatedOracle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedOracle seeds the oracle with src; a nil src falls back to a
// time-seeded source.
func NewSimulatedOracle(src rand.Source) *SimulatedOracle {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &SimulatedOracle{rng: rand.New(src)}
}

// GetAdvice perturbs the base price within fixed bounds and classifies the
// 24h movement: above +5% → HOLD, below −5% → SELL NOW, otherwise SELL.
// All monetary outputs are rounded to two decimals.
func (o *SimulatedOracle) GetAdvice(ctx context.Context, req Request) (*domain.PriceAdvice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := defaultBasePrice
	if p, ok := basePrices[strings.ToLower(strings.TrimSpace(req.CropType))]; ok {
		base = p
	}

	o.mu.Lock()
	offset := o.rng.Float64()*0.20 - 0.10   // current: base ±10%
	move24 := o.rng.Float64()*0.30 - 0.15   // 24h: ±15% of current
	move48 := o.rng.Float64()*0.20 - 0.10   // 48h: ±10% of 24h
	confidence := 0.75 + o.rng.Float64()*0.23
	o.mu.Unlock()

	current := round2(base * (1 + offset))
	p24 := round2(current * (1 + move24))
	p48 := round2(p24 * (1 + move48))

	changePct := 0.0
	if current > 0 {
		changePct = (p24 - current) / current * 100
	}

	advice := &domain.PriceAdvice{
		CurrentPrice: current,
		Predicted24h: p24,
		Predicted48h: p48,
		Confidence:   round2(confidence),
	}
	switch {
	case p24 > current*1.05:
		advice.Recommendation = "HOLD"
		advice.ReasonText = reasonRise(changePct)
	case p24 < current*0.95:
		advice.Recommendation = "SELL NOW"
		advice.ReasonText = reasonDrop(changePct)
	default:
		advice.Recommendation = "SELL"
		advice.ReasonText = "Prices are expected to stay stable over the next 24 hours. Selling at the current rate is a safe choice."
	}
	return advice, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
