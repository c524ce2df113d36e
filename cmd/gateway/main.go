package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kwanza-pay/kwanza_pay/internal/config"
	"github.com/kwanza-pay/kwanza_pay/internal/gateway"
	"github.com/kwanza-pay/kwanza_pay/internal/infra"
	"github.com/kwanza-pay/kwanza_pay/internal/logging"
	"github.com/kwanza-pay/kwanza_pay/internal/server"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("server", "gateway")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	}

	srv, err := server.New(cfg, func(app *fiber.App) error {
		return gateway.Setup(app, gateway.Deps{Cfg: cfg, Cache: cache, Logger: logger})
	})
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	logger.Info("gateway launched",
		"version", versioninfo.Short(),
		"addr", cfg.Address(),
		"rpc", cfg.RPCURL,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Listen()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
