package health

import (
	"context"
	"time"

	"mandi-core/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers reports liveness of the core's collaborators.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON returns component status for monitoring.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "not configured"
	if h.DB != nil {
		dbStatus = "ok"
		if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}
	}
	redisStatus := "not configured"
	if h.Rdb != nil {
		redisStatus = "ok"
		if err := h.Rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	}
	return response.Success(c, "Health", map[string]interface{}{
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}, nil)
}
