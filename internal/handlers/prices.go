package handlers

import (
	"net/http"
	"strconv"

	"DeckBox/internal/middleware"
	"DeckBox/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PriceHandler serves cached price history.
type PriceHandler struct {
	Prices *service.PriceService
	Logger *zap.SugaredLogger
}

// NewPriceHandler creates the price handler.
func NewPriceHandler(prices *service.PriceService, logger *zap.SugaredLogger) *PriceHandler {
	return &PriceHandler{Prices: prices, Logger: logger}
}

// PricePointDTO is one snapshot in the response.
type PricePointDTO struct {
	Date    string   `json:"date"`
	USD     *float64 `json:"usd"`
	USDFoil *float64 `json:"usd_foil"`
}

// History handles GET /api/cards/{cardID}/prices?days=N (default 90).
func (h *PriceHandler) History(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	cardID := chi.URLParam(r, "cardID")
	if _, err := uuid.Parse(cardID); err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	days := 90
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 3650 {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}
		days = n
	}

	rows, err := h.Prices.History(r.Context(), cardID, days)
	if err != nil {
		h.Logger.Errorw("price history failed", "card_id", cardID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	dtos := make([]PricePointDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, PricePointDTO{
			Date:    row.RecordedAt.UTC().Format("2006-01-02"),
			USD:     row.USD,
			USDFoil: row.USDFoil,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}
