// Package speech defines the fire-and-forget sink for spoken output and
// builds the localized announcement text the core feeds into it. The core
// never depends on the sink's success.
package speech

import (
	"fmt"

	"mandi-core/internal/domain"

	"github.com/rs/zerolog/log"
)

const (
	LanguageEnglish = "English"
	LanguageKannada = "Kannada"
)

// Speaker is the speech-output contract. Speak takes a fully-formed localized
// string plus a language tag; Stop interrupts any in-progress speech.
type Speaker interface {
	Speak(text, languageTag string)
	Stop()
}

// LogSpeaker is a Speaker that writes to the structured log; the headless
// core's stand-in for a device TTS engine.
type LogSpeaker struct{}

func (LogSpeaker) Speak(text, languageTag string) {
	log.Info().Str("language", languageTag).Str("text", text).Msg("speak")
}

func (LogSpeaker) Stop() {}

// NoopSpeaker discards everything.
type NoopSpeaker struct{}

func (NoopSpeaker) Speak(text, languageTag string) {}
func (NoopSpeaker) Stop()                          {}

// isKannada matches the language tags the app stores for Kannada.
func isKannada(lang string) bool {
	return lang == "kn" || lang == "kn-IN" || lang == LanguageKannada
}

// NarrateAdvice renders the spoken price-advice summary in the selected
// language.
func NarrateAdvice(advice domain.PriceAdvice, lang string) string {
	if isKannada(lang) {
		return "ನಿಮ್ಮ ಬೆಳೆಗಳಿಗೆ AI ಬೆಲೆ ಮಾಹಿತಿ. " +
			fmt.Sprintf("ಪ್ರಸ್ತುತ ಮಾರುಕಟ್ಟೆ ಬೆಲೆ %.2f ರೂಪಾಯಿಗಳು. ", advice.CurrentPrice) +
			fmt.Sprintf("24 ಗಂಟೆಗಳಲ್ಲಿ ಅಂದಾಜು ಬೆಲೆ %.2f ರೂಪಾಯಿಗಳು. ", advice.Predicted24h) +
			fmt.Sprintf("ನಮ್ಮ ಸಲಹೆ: %s. %s", advice.Recommendation, advice.ReasonText)
	}
	return "AI Price Insight for your crops. " +
		fmt.Sprintf("Current market price is %.2f rupees. ", advice.CurrentPrice) +
		fmt.Sprintf("Predicted price in 24 hours is %.2f rupees. ", advice.Predicted24h) +
		fmt.Sprintf("Our recommendation: %s. %s", advice.Recommendation, advice.ReasonText)
}
