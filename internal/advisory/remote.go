package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mandi-core/internal/domain"
)

// RemoteOracle calls the networked AI pricing endpoint.
type RemoteOracle struct {
	BaseURL string
	Client  *http.Client
}

type remoteResponse struct {
	CurrentPrice   float64 `json:"current_price"`
	Predicted24h   float64 `json:"predicted_24h"`
	Predicted48h   float64 `json:"predicted_48h"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation"`
	ReasonText     string  `json:"reason_text"`
}

// GetAdvice posts the request contract to /api/ai/price-advice. Any transport
// or decode failure is reported as a retryable transport error.
func (r *RemoteOracle) GetAdvice(ctx context.Context, req Request) (*domain.PriceAdvice, error) {
	if r.Client == nil {
		r.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if r.BaseURL == "" {
		return nil, fmt.Errorf("advisory: PRICE_API_URL is not set")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("advisory: %v", err)
	}
	url := strings.TrimRight(r.BaseURL, "/") + "/api/ai/price-advice"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("advisory: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: pricing endpoint returned %d", ErrTransport, resp.StatusCode)
	}
	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return &domain.PriceAdvice{
		CurrentPrice:   out.CurrentPrice,
		Predicted24h:   out.Predicted24h,
		Predicted48h:   out.Predicted48h,
		Confidence:     out.Confidence,
		Recommendation: out.Recommendation,
		ReasonText:     out.ReasonText,
	}, nil
}
