package market

import (
	"context"
	"encoding/json"

	"mandi-core/internal/database"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// journal appends one MarketEvent row per settled mutation. Journaling is
// best-effort: a write failure is logged, never surfaced to the caller, and a
// hub without a DB skips it entirely.
func (h *Hub) journal(ctx context.Context, eventType, targetID string, actorID *string, payload map[string]interface{}) {
	if h.DB == nil {
		return
	}
	data, _ := json.Marshal(payload)
	event := &database.MarketEvent{
		EventType: eventType,
		TargetID:  targetID,
		ActorID:   actorID,
		EventData: datatypes.JSON(data),
	}
	if err := h.DB.WithContext(ctx).Create(event).Error; err != nil {
		log.Error().Err(err).Str("event_type", eventType).Str("target_id", targetID).Msg("Failed to journal market event")
	}
}
