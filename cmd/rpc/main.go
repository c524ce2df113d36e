package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kwanza-pay/kwanza_pay/internal/config"
	"github.com/kwanza-pay/kwanza_pay/internal/infra"
	"github.com/kwanza-pay/kwanza_pay/internal/logging"
	"github.com/kwanza-pay/kwanza_pay/internal/routes"
	"github.com/kwanza-pay/kwanza_pay/internal/server"
)

func main() {
	cfg, err := config.LoadRPC()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("server", "rpc")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := infra.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv, err := server.New(cfg, func(app *fiber.App) error {
		return routes.SetupRPC(app, routes.Deps{Cfg: cfg, DB: db, Logger: logger})
	})
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	logger.Info("rpc server launched",
		"version", versioninfo.Short(),
		"addr", cfg.Address(),
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
