package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is an authenticated user record. At most one identity carries the
// logged-in flag at any observable instant; the session store enforces this by
// demoting all identities before promoting a new one.
type Identity struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	PhoneNumber string    `gorm:"column:phone_number;not null;index" json:"phone_number"`
	Role        Role      `gorm:"column:role;type:varchar(16);not null;default:NONE" json:"role"`
	PinHash     string    `gorm:"column:pin_hash" json:"-"`
	LoggedIn    bool      `gorm:"column:logged_in;not null;default:false" json:"logged_in"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Identity) TableName() string {
	return "users"
}

// BeforeCreate sets a UUID if not set (for DBs without gen_random_uuid).
func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
