package database

import (
	"strings"

	"mandi-core/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB. A postgres:// DSN uses the Postgres driver with
// PreferSimpleProtocol (avoids 42P05 "prepared statement already exists"
// behind poolers); anything else is treated as a SQLite path, which is what
// tests and local development use.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate runs migrations for the models the core persists.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Identity{}, &MarketEvent{})
}
