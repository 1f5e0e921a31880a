// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"currency-exchange/internal/service"
	"currency-exchange/internal/util"
)

// WalletHandler handles HTTP requests for users, wallets and balances.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateUser handles the user registration request.
// POST /users
func (h *WalletHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, user)
}

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	UserID     int64 `json:"user_id"`
	CurrencyID int64 `json:"currency_id"`
}

// CreateWallet handles the wallet creation request.
// POST /wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if !authorizeIssuer(w, r, h.logger, req.UserID) {
		return
	}

	wallet, err := h.service.CreateWallet(r.Context(), req.UserID, req.CurrencyID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, wallet)
}

// FundRequest represents the request body for funding a wallet.
type FundRequest struct {
	UserID     int64 `json:"user_id"`
	CurrencyID int64 `json:"currency_id"`
	Amount     int64 `json:"amount"`
}

// Fund handles the wallet funding request. The wallet is created on the
// first funding for the currency.
// POST /wallets/fund
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	var req FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if !authorizeIssuer(w, r, h.logger, req.UserID) {
		return
	}

	newAmount, err := h.service.Fund(r.Context(), req.UserID, req.CurrencyID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"user_id":     req.UserID,
		"currency_id": req.CurrencyID,
		"new_balance": newAmount,
	})
}

// GetBalance handles the balance lookup request.
// GET /wallets/balance?user_id=&currency_id=
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	currencyID, err := strconv.ParseInt(r.URL.Query().Get("currency_id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.FindWallet(r.Context(), userID, currencyID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	amount, err := h.service.BalanceOf(r.Context(), wallet.ID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"wallet_id":   wallet.ID,
		"currency_id": wallet.CurrencyID,
		"balance":     amount,
	})
}
