// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "currency-exchange/internal/api"
	"currency-exchange/internal/api/handler"
	"currency-exchange/internal/cache"
	"currency-exchange/internal/config"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/repository/postgres"
	"currency-exchange/internal/service"
	"currency-exchange/internal/util"
	"currency-exchange/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	UserRepository     repository.UserRepository
	WalletRepository   repository.WalletRepository
	CurrencyRepository repository.CurrencyRepository
	OrderRepository    repository.OrderRepository
	Ledger             repository.Ledger

	// Services
	WalletService   service.WalletService
	OrderService    service.OrderService
	ExchangeService service.ExchangeService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Connect to Redis. The currency cache degrades to direct reads when
	// redis is unreachable, so a failed ping is logged, not fatal.
	app.Redis = redis.NewClient(&redis.Options{Addr: app.Config.RedisAddr})
	if err := app.Redis.Ping(ctx).Err(); err != nil {
		app.Logger.Warn("Redis unreachable, currency cache will fall back to database", "addr", app.Config.RedisAddr, "error", err)
	} else {
		app.Logger.Info("Redis connection established.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.OrderRepository = postgres.NewOrderRepository(app.DB)
	app.Ledger = postgres.NewLedger(app.DB)
	app.CurrencyRepository = cache.NewCurrencyCache(
		postgres.NewCurrencyRepository(app.DB),
		app.Redis,
		app.Config.CurrencyCacheTTL,
		app.Logger,
	)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	app.WalletService = service.NewWalletService(app.UserRepository, app.WalletRepository, app.Ledger, app.Logger)
	app.OrderService = service.NewOrderService(app.OrderRepository, app.CurrencyRepository, nil, app.Logger)
	app.ExchangeService = service.NewExchangeService(app.WalletRepository, app.Ledger, app.Config.ExchangeMaxRetries, app.Logger)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger)
	currencyHandler := handler.NewCurrencyHandler(app.CurrencyRepository, app.Logger)
	orderHandler := handler.NewOrderHandler(app.OrderService, app.Logger)
	exchangeHandler := handler.NewExchangeHandler(app.ExchangeService, app.Logger)
	app.HTTPHandler = router.NewRouter(walletHandler, currencyHandler, orderHandler, exchangeHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
