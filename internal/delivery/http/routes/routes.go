package routes

import (
	"log"

	"campusbridge/internal/config"
	"campusbridge/internal/database"
	"campusbridge/internal/delivery/http/handler"
	"campusbridge/internal/domain/matching"
	"campusbridge/internal/infrastructure/cache"
	"campusbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg      config.Config
	db       database.DB
	redis    *cache.Redis
	registry *matching.Registry
	hub      *ws.Hub
	logger   *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, registry *matching.Registry, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, redis: redis, registry: registry, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	handler.NewHealthHandler(r.db, r.redis).RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	wsHandler := ws.NewHandler(r.hub, r.logger)
	app.Get("/ws/listings", wsHandler.HandleListingsWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.redis, r.registry, r.logger)
}
