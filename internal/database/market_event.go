package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MarketEvent is one journal row per settled hub mutation. The payload is the
// mutation's observable effect, stored as JSON for ad-hoc querying.
type MarketEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventType string         `gorm:"column:event_type;not null;index" json:"event_type"`
	TargetID  string         `gorm:"column:target_id;not null" json:"target_id"`
	ActorID   *string        `gorm:"column:actor_id" json:"actor_id"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (MarketEvent) TableName() string {
	return "market_events"
}

func (e *MarketEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
