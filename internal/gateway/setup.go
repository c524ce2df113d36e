package gateway

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/kwanza-pay/kwanza_pay/internal/config"
	"github.com/kwanza-pay/kwanza_pay/internal/middleware"
)

// Deps aggregates shared dependencies required to wire the gateway.
type Deps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures the public gateway surface. Redis is optional; with it
// present, unsafe requests carrying an Idempotency-Key replay their stored
// response on retry.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		redisStatus := "ok"
		if d.Cache != nil {
			if err := d.Cache.Ping(c.UserContext()).Err(); err != nil {
				redisStatus = err.Error()
			}
		}
		status := fiber.StatusOK
		if redisStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{"status": fiber.Map{"redis": redisStatus}})
	})

	client := NewClient(Config{BaseURL: d.Cfg.RPCURL, Timeout: d.Cfg.RPCTimeout})
	h := NewHandler(client, d.Logger)

	app.Post("/create-user", h.CreateUser)
	app.Get("/get-user/:id", h.GetUser)

	return nil
}
