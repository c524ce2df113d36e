package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kwanza-pay/kwanza_pay/internal/config"
)

// SetupFunc wires middlewares and routes onto a fresh Fiber application.
type SetupFunc func(app *fiber.App) error

// Server wraps a Fiber application; both the RPC server and the gateway are
// built through it so they share timeouts and shutdown behavior.
type Server struct {
	app *fiber.App
	cfg config.Config
}

// New instantiates the HTTP server and delegates route wiring to setup.
func New(cfg config.Config, setup SetupFunc) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	if err := setup(app); err != nil {
		return nil, err
	}

	return &Server{app: app, cfg: cfg}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
