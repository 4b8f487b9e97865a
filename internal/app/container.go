package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusbridge/internal/config"
	"campusbridge/internal/database"
	dbpostgres "campusbridge/internal/database/postgres"
	"campusbridge/internal/domain/matching"
	"campusbridge/internal/infrastructure/cache"
	"campusbridge/internal/ws"
)

// Container holds every process-lifetime dependency. The signal registry is
// built here so a misconfigured profile or weight table fails startup instead
// of the first request.
type Container struct {
	Config   config.Config
	DB       database.DB
	Redis    *cache.Redis
	Registry *matching.Registry
	Hub      *ws.Hub
	Logger   *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	registry, err := matching.NewRegistryForProfile(cfg.Match.Profile)
	if err != nil {
		return nil, fmt.Errorf("build signal registry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	return &Container{
		Config:   cfg,
		DB:       db,
		Redis:    redis,
		Registry: registry,
		Hub:      hub,
		Logger:   logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil && c.Logger != nil {
			c.Logger.Printf("redis close error: %v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
