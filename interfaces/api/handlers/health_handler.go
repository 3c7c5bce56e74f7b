package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"taskchat/pkg/utils"
)

// ReadyCheck probes one backing dependency for the readiness endpoint.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	db     *gorm.DB
	checks []ReadyCheck
}

func NewHealthHandler(db *gorm.DB, checks []ReadyCheck) *HealthHandler {
	return &HealthHandler{db: db, checks: checks}
}

// Health is the liveness probe.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "taskchat",
	})
}

// Ready is the readiness probe; it fails while the database or any
// configured optional backend is unreachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, utils.ErrCodeInternalError, "database unavailable", nil)
		}
	}

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, utils.ErrCodeInternalError, fmt.Sprintf("%s unavailable", check.Name), nil)
		}
	}

	return c.JSON(fiber.Map{"status": "ready"})
}
