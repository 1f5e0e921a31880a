// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"currency-exchange/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	walletHandler *handler.WalletHandler,
	currencyHandler *handler.CurrencyHandler,
	orderHandler *handler.OrderHandler,
	exchangeHandler *handler.ExchangeHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Open routes: registration and catalog reads need no acting identity.
	r.Post("/users", walletHandler.CreateUser)
	r.Post("/currencies", currencyHandler.CreateCurrency)
	r.Get("/currencies/{code}", currencyHandler.GetCurrency)
	r.Get("/orders/buy", orderHandler.ListBuyOrders)
	r.Get("/orders/sell", orderHandler.ListSellOrders)
	r.Get("/wallets/balance", walletHandler.GetBalance)

	// Routes acting on behalf of a user carry X-User-ID; handlers verify it
	// matches the issuer in the body.
	r.Group(func(r chi.Router) {
		r.Use(handler.ActorID(logger))

		r.Post("/wallets", walletHandler.CreateWallet)
		r.Post("/wallets/fund", walletHandler.Fund)

		r.Post("/orders/buy", orderHandler.CreateBuyOrder)
		r.Post("/orders/sell", orderHandler.CreateSellOrder)

		r.Put("/exchange/buy", exchangeHandler.Buy)
		r.Put("/exchange/sell", exchangeHandler.Sell)
	})

	return r
}
