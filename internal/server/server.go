package server

import (
	"catalog/internal/handlers"
	"catalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options are the dependencies of the HTTP application.
type Options struct {
	ProductService handlers.ProductService
	HealthCheck    handlers.HealthCheck
	Logger         zerolog.Logger
}

// New builds the Fiber application with middleware and all routes.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(opts.Logger),
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(opts.Logger.With().Str("component", "http").Logger()))
	app.Use(recover.New())

	handlers.NewHealthHandler(opts.HealthCheck, opts.Logger).RegisterRoutes(app)
	handlers.NewProductHandler(opts.ProductService, opts.Logger).RegisterRoutes(app)

	return app
}
