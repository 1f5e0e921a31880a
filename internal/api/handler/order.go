// internal/api/handler/order.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"currency-exchange/internal/api/types"
	"currency-exchange/internal/domain"
	"currency-exchange/internal/service"
	"currency-exchange/internal/util"
)

const defaultOrderLimit = 10

// OrderHandler handles HTTP requests for the order book.
type OrderHandler struct {
	service service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateOrderRequest represents the request body for creating an order of
// either side.
type CreateOrderRequest struct {
	IssuerID       int64 `json:"order_issuer_id"`
	Amount         int64 `json:"amount"`
	BuyCurrencyID  int64 `json:"buy_currency_id"`
	SellCurrencyID int64 `json:"sell_currency_id"`
	ExpiryDays     int   `json:"expiry_days"`
}

// CreateBuyOrder handles the buy order creation request.
// POST /orders/buy
func (h *OrderHandler) CreateBuyOrder(w http.ResponseWriter, r *http.Request) {
	h.createOrder(w, r, domain.OrderSideBuy)
}

// CreateSellOrder handles the sell order creation request.
// POST /orders/sell
func (h *OrderHandler) CreateSellOrder(w http.ResponseWriter, r *http.Request) {
	h.createOrder(w, r, domain.OrderSideSell)
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request, side domain.OrderSide) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if !authorizeIssuer(w, r, h.logger, req.IssuerID) {
		return
	}

	var order *domain.Order
	var err error
	if side == domain.OrderSideBuy {
		order, err = h.service.CreateBuyOrder(r.Context(), req.IssuerID, req.Amount, req.BuyCurrencyID, req.SellCurrencyID, req.ExpiryDays)
	} else {
		order, err = h.service.CreateSellOrder(r.Context(), req.IssuerID, req.Amount, req.SellCurrencyID, req.BuyCurrencyID, req.ExpiryDays)
	}
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, order)
}

// ListBuyOrders handles the buy order listing request.
// GET /orders/buy?limit=
func (h *OrderHandler) ListBuyOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, domain.OrderSideBuy)
}

// ListSellOrders handles the sell order listing request.
// GET /orders/sell?limit=
func (h *OrderHandler) ListSellOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, domain.OrderSideSell)
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request, side domain.OrderSide) {
	limit := int64(defaultOrderLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		// limit=0 is a valid request for an empty page.
		limit = parsed
	}

	var orders []domain.Order
	var err error
	if side == domain.OrderSideBuy {
		orders, err = h.service.ListBuyOrders(r.Context(), limit)
	} else {
		orders, err = h.service.ListSellOrders(r.Context(), limit)
	}
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Order]{
		Data:  orders,
		Limit: limit,
		Count: len(orders),
	})
}
