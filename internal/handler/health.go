package handler

import (
	"interview-agent/internal/domain"
	"interview-agent/internal/dto"
	"interview-agent/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// HealthHandler reports the status of the service and its dependencies
type HealthHandler struct {
	db          *sqlx.DB
	cache       domain.Cache
	aiAvailable bool
}

// NewHealthHandler creates a new HealthHandler instance. cache may be
// nil when Redis is not configured.
func NewHealthHandler(db *sqlx.DB, cache domain.Cache, aiAvailable bool) *HealthHandler {
	return &HealthHandler{
		db:          db,
		cache:       cache,
		aiAvailable: aiAvailable,
	}
}

// Health godoc
// @Summary Service health check
// @Description Reports database and cache connectivity and whether a text generator is configured
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:      "ok",
		AIAvailable: h.aiAvailable,
		Database:    "ok",
		Cache:       "disabled",
	}

	if err := h.db.PingContext(c.Context()); err != nil {
		logger.Get().Warn("Database health check failed", zap.Error(err))
		resp.Database = "unavailable"
		resp.Status = "degraded"
	}

	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache.Ping(c.Context()); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			resp.Cache = "unavailable"
			resp.Status = "degraded"
		}
	}

	return c.JSON(resp)
}
