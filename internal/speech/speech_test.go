package speech

import (
	"testing"

	"mandi-core/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNarrateAdviceEnglish(t *testing.T) {
	advice := domain.PriceAdvice{
		CurrentPrice:   25.5,
		Predicted24h:   27.0,
		Recommendation: "HOLD",
		ReasonText:     "Prices are projected to rise.",
	}
	text := NarrateAdvice(advice, LanguageEnglish)
	assert.Contains(t, text, "Current market price is 25.50 rupees.")
	assert.Contains(t, text, "Predicted price in 24 hours is 27.00 rupees.")
	assert.Contains(t, text, "Our recommendation: HOLD. Prices are projected to rise.")
}

func TestNarrateAdviceKannadaTags(t *testing.T) {
	advice := domain.PriceAdvice{CurrentPrice: 30, Predicted24h: 28, Recommendation: "SELL NOW"}
	for _, tag := range []string{"kn", "kn-IN", LanguageKannada} {
		text := NarrateAdvice(advice, tag)
		assert.Contains(t, text, "ಪ್ರಸ್ತುತ ಮಾರುಕಟ್ಟೆ ಬೆಲೆ 30.00 ರೂಪಾಯಿಗಳು.", "tag %s", tag)
		assert.Contains(t, text, "SELL NOW")
	}
}

func TestNarrateAdviceUnknownLanguageFallsBackToEnglish(t *testing.T) {
	advice := domain.PriceAdvice{CurrentPrice: 30}
	text := NarrateAdvice(advice, "Hindi")
	assert.Contains(t, text, "AI Price Insight for your crops.")
}
