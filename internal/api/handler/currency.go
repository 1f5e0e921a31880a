// internal/api/handler/currency.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
)

// CurrencyHandler handles HTTP requests for the currency catalog. The
// catalog has no business rules beyond uniqueness, so the handler talks to
// the repository (usually the cached one) directly.
type CurrencyHandler struct {
	currencies repository.CurrencyRepository
	logger     *slog.Logger
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencies repository.CurrencyRepository, logger *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currencies: currencies,
		logger:     logger,
	}
}

// CreateCurrencyRequest represents the request body for currency creation.
type CreateCurrencyRequest struct {
	Code string `json:"currency_code"`
}

// CreateCurrency handles the currency registration request.
// POST /currencies
func (h *CurrencyHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req CreateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Code == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	currency := &domain.Currency{Code: req.Code}
	if err := h.currencies.CreateCurrency(r.Context(), currency); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, currency)
}

// GetCurrency handles the currency lookup request.
// GET /currencies/{code}
func (h *CurrencyHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	currency, err := h.currencies.GetCurrencyByCode(r.Context(), code)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, currency)
}
