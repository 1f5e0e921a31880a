// internal/api/handler/exchange.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/service"
	"currency-exchange/internal/util"
)

// ExchangeHandler handles HTTP requests that settle exchanges. The buy and
// sell routes run the same settlement; the split mirrors the order sides.
type ExchangeHandler struct {
	service service.ExchangeService
	logger  *slog.Logger
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(svc service.ExchangeService, logger *slog.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		service: svc,
		logger:  logger,
	}
}

// ExchangeAPIRequest represents the request body for both exchange routes.
// The issuer receives sum units of the buy currency and pays
// round(sum * rate) units of the sell currency.
type ExchangeAPIRequest struct {
	Sum            int64           `json:"sum"`
	Rate           decimal.Decimal `json:"rate"`
	IssuerID       int64           `json:"order_issuer_id"`
	BuyCurrencyID  int64           `json:"buy_currency_id"`
	SellCurrencyID int64           `json:"sell_currency_id"`
}

// Buy handles the buy-side exchange request.
// PUT /exchange/buy
func (h *ExchangeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.exchange(w, r)
}

// Sell handles the sell-side exchange request.
// PUT /exchange/sell
func (h *ExchangeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.exchange(w, r)
}

func (h *ExchangeHandler) exchange(w http.ResponseWriter, r *http.Request) {
	var req ExchangeAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if !authorizeIssuer(w, r, h.logger, req.IssuerID) {
		return
	}

	result, err := h.service.Exchange(r.Context(), domain.ExchangeRequest{
		Sum:                req.Sum,
		Rate:               req.Rate,
		IssuerID:           req.IssuerID,
		IncomingCurrencyID: req.BuyCurrencyID,
		OutgoingCurrencyID: req.SellCurrencyID,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, result)
}
