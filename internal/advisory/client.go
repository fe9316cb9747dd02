package advisory

import (
	"context"
	"fmt"
	"time"

	"mandi-core/internal/domain"
	"mandi-core/internal/speech"
	"mandi-core/internal/state"

	"github.com/rs/zerolog/log"
)

// Client drives the oracle through the observable tri-state container. Every
// GetAdvice publishes Loading first, then exactly one terminal state; a stale
// in-flight call never overwrites a newer result, and a response landing after
// the consuming context was cancelled is discarded.
type Client struct {
	Oracle   Oracle
	Speaker  speech.Speaker // optional spoken summary of each advice
	Language func() string  // current language for narration; nil means English
	Delay    time.Duration  // simulated round trip for the simulated oracle
	Timeout  time.Duration

	tracker *state.Tracker[domain.PriceAdvice]
}

// NewClient wraps oracle.
func NewClient(oracle Oracle, delay, timeout time.Duration) *Client {
	return &Client{
		Oracle:  oracle,
		Delay:   delay,
		Timeout: timeout,
		tracker: state.NewTracker[domain.PriceAdvice](),
	}
}

// Observe returns a replay-latest stream of the advice state.
func (c *Client) Observe(ctx context.Context) <-chan state.Async[domain.PriceAdvice] {
	return c.tracker.Observe(ctx)
}

// Latest returns the current advice state without subscribing.
func (c *Client) Latest() state.Async[domain.PriceAdvice] {
	return c.tracker.Latest()
}

// GetAdvice resolves advice for the crop and quantity and returns the settled
// value. The observable state passes through Loading first and the call is
// safely re-invocable (last writer wins).
func (c *Client) GetAdvice(ctx context.Context, cropType string, quantityKg float64) (*domain.PriceAdvice, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	var settled *domain.PriceAdvice
	var failed error
	c.tracker.Run(ctx, func(ctx context.Context) (domain.PriceAdvice, error) {
		if err := c.roundTrip(ctx); err != nil {
			failed = err
			return domain.PriceAdvice{}, err
		}
		advice, err := c.Oracle.GetAdvice(ctx, Request{
			CropType:    cropType,
			QuantityKg:  quantityKg,
			Location:    "local",
			HarvestDate: time.Now().Format("2006-01-02"),
		})
		if err != nil {
			failed = err
			return domain.PriceAdvice{}, err
		}
		settled = advice
		return *advice, nil
	})
	if failed != nil {
		return nil, failed
	}
	if settled == nil {
		// superseded or cancelled before settling
		return nil, ctx.Err()
	}
	c.speak(*settled)
	return settled, nil
}

// speak announces the advice through the speech sink, fire and forget.
func (c *Client) speak(advice domain.PriceAdvice) {
	if c.Speaker == nil {
		return
	}
	lang := speech.LanguageEnglish
	if c.Language != nil {
		lang = c.Language()
	}
	text := speech.NarrateAdvice(advice, lang)
	c.Speaker.Speak(text, lang)
	log.Debug().Str("language", lang).Msg("Advice narration dispatched")
}

// roundTrip simulates oracle latency for the demo path.
func (c *Client) roundTrip(ctx context.Context) error {
	if c.Delay <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return nil
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	}
}

func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.Timeout)
}
