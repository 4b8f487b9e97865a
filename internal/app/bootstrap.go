package app

import (
	"fmt"
	"strings"

	"campusbridge/internal/config"
	"campusbridge/internal/delivery/http/middleware"
	"campusbridge/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, starts the websocket hub, and mounts every
// route. The returned cleanup closes the stores.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	go container.Hub.Run()

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, container)
	routes.NewRegistry(
		container.Config,
		container.DB,
		container.Redis,
		container.Registry,
		container.Hub,
		container.Logger,
	).Register(f)

	app := &App{Fiber: f, Container: container}
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, container *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(container.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
