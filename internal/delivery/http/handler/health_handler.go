package handler

import (
	"context"
	"time"

	"campusbridge/internal/database"
	"campusbridge/internal/infrastructure/cache"
	"campusbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	redis *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

// Check reports liveness plus the state of both backing stores. A degraded
// cache does not fail the check because recommendations work without it.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "unconfigured"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unreachable"
	}

	cacheStatus := "ok"
	if h.redis == nil {
		cacheStatus = "unconfigured"
	} else if err := h.redis.Ping(ctx); err != nil {
		cacheStatus = "unreachable"
	}

	status := fiber.StatusOK
	if dbStatus == "unreachable" {
		status = fiber.StatusServiceUnavailable
	}

	return response.Success(c, status, response.DefaultMessageForStatus(status), fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
