package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kwanza-pay/kwanza_pay/internal/config"
	"github.com/kwanza-pay/kwanza_pay/internal/credential"
	"github.com/kwanza-pay/kwanza_pay/internal/middleware"
	"github.com/kwanza-pay/kwanza_pay/internal/user"
	"github.com/kwanza-pay/kwanza_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire the RPC server.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Logger *slog.Logger
}

// SetupRPC configures middlewares and the RPC routes. Without a database
// the repositories fall back to in-memory implementations, which is only
// meant for development and tests.
func SetupRPC(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	var userRepo user.Repository
	var walletRepo wallet.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		walletRepo = wallet.NewMemoryRepository()
	}

	userHandler := user.NewHandler(user.NewService(userRepo, credential.NewBcryptHasher()), d.Logger)
	walletHandler := wallet.NewHandler(wallet.NewService(walletRepo), d.Logger)

	rpc := app.Group("/rpc")
	rpc.Post("/user.UserService/CreateUser", userHandler.CreateUser)
	rpc.Post("/user.UserService/GetUser", userHandler.GetUser)
	rpc.Post("/wallet.WalletService/CreateWallet", walletHandler.CreateWallet)

	return nil
}
