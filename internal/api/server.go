// Package api serves the rules core over HTTP and WebSocket.
package api

import (
	"errors"
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/hailam/chesscore/internal/perft"
)

// DefaultMaxPerftDepth bounds the work a single request can ask for.
const DefaultMaxPerftDepth = 5

// Config configures the HTTP application.
type Config struct {
	Counter       *perft.Counter
	AllowOrigins  string
	MaxPerftDepth int
	LogOutput     io.Writer
}

// New builds the fiber application with all routes mounted.
func New(cfg Config) *fiber.App {
	if cfg.Counter == nil {
		cfg.Counter = perft.NewCounter()
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	if cfg.MaxPerftDepth <= 0 {
		cfg.MaxPerftDepth = DefaultMaxPerftDepth
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stdout
	}

	app := fiber.New(fiber.Config{
		AppName:      "chesscore",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${respHeader:X-Request-ID} ${status} ${method} ${path} ${latency}\n",
		Output: cfg.LogOutput,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	ctrl := newController(cfg.Counter, cfg.MaxPerftDepth)

	api := app.Group("/api")
	api.Get("/board", ctrl.GetBoard)
	api.Post("/move", ctrl.PostMove)
	api.Get("/perft", ctrl.GetPerft)

	app.Use("/ws", webSocketUpgrade())
	app.Get("/ws/divide", websocket.New(ctrl.StreamDivide))

	return app
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// requestID tags each response with the caller's X-Request-ID or a fresh one.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

// webSocketUpgrade rejects plain HTTP requests to WebSocket endpoints.
func webSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}
}
