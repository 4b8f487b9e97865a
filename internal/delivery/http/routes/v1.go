package routes

import (
	"log"

	"campusbridge/internal/config"
	"campusbridge/internal/database"
	v1 "campusbridge/internal/delivery/http/routes/v1"
	"campusbridge/internal/domain/matching"
	"campusbridge/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, registry *matching.Registry, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redis, registry, logger)
}
