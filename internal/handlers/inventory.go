package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"DeckBox/internal/middleware"
	"DeckBox/internal/model"
	"DeckBox/internal/repo"
	"DeckBox/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryHandler serves Box and deck contents and same-owner moves.
type InventoryHandler struct {
	Ledger *service.Ledger
	Access *service.Access
	Logger *zap.SugaredLogger
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(ledger *service.Ledger, access *service.Access, logger *zap.SugaredLogger) *InventoryHandler {
	return &InventoryHandler{Ledger: ledger, Access: access, Logger: logger}
}

// MoveRequest relocates quantity from one of the caller's units to the Box
// (deck_id null) or one of the caller's decks.
type MoveRequest struct {
	UnitID   int64  `json:"unit_id"`
	DeckID   *int64 `json:"deck_id"`
	Quantity int    `json:"quantity"`
}

// UnitDTO is one ledger row in responses.
type UnitDTO struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"user_id"`
	CardID    string   `json:"card_id"`
	CardName  string   `json:"card_name,omitempty"`
	SetCode   string   `json:"set_code,omitempty"`
	Quantity  int      `json:"quantity"`
	Foil      bool     `json:"foil"`
	Condition string   `json:"condition"`
	DeckID    *int64   `json:"deck_id"`
	ValueUSD  *float64 `json:"value_usd,omitempty"`
}

func toUnitDTO(u *model.InventoryUnit) UnitDTO {
	dto := UnitDTO{
		ID:        u.ID,
		UserID:    u.UserID,
		CardID:    u.CardScryfallID,
		Quantity:  u.Quantity,
		Foil:      u.IsFoil,
		Condition: string(u.Condition),
		DeckID:    u.DeckID,
		ValueUSD:  u.CurrentValue(),
	}
	if u.Card != nil {
		dto.CardName = u.Card.Name
		dto.SetCode = u.Card.SetCode
	}
	return dto
}

// Move handles POST /api/inventory/move.
func (h *InventoryHandler) Move(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.Ledger.Move(r.Context(), ownerID, req.UnitID, req.DeckID, req.Quantity)
	switch {
	case errors.Is(err, repo.ErrUnitNotFound):
		http.Error(w, "unit not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrInsufficientQuantity), errors.Is(err, repo.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrForeignDeck):
		http.Error(w, "deck not owned by caller", http.StatusForbidden)
	case err != nil:
		h.Logger.Errorw("move: service error", "owner_id", ownerID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// OwnBox handles GET /api/box.
func (h *InventoryHandler) OwnBox(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	h.respondBox(w, r, userID)
}

// UserBox handles GET /api/users/{userID}/box — a group-mate's Box.
func (h *InventoryHandler) UserBox(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	allowed, err := h.Access.CanViewBox(r.Context(), viewerID, ownerID)
	if err != nil {
		h.Logger.Errorw("box: access check failed", "viewer_id", viewerID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !allowed {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	h.respondBox(w, r, ownerID)
}

// DeckCards handles GET /api/decks/{deckID}/cards.
func (h *InventoryHandler) DeckCards(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	deckID, err := strconv.ParseInt(chi.URLParam(r, "deckID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid deck id", http.StatusBadRequest)
		return
	}

	deck, err := h.Ledger.Deck(r.Context(), deckID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "deck not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("deck cards: lookup failed", "deck_id", deckID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	allowed, err := h.Access.CanViewDeck(r.Context(), viewerID, deck)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !allowed {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	units, err := h.Ledger.DeckCards(r.Context(), deckID)
	if err != nil {
		h.Logger.Errorw("deck cards: list failed", "deck_id", deckID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeUnits(w, units)
}

func (h *InventoryHandler) respondBox(w http.ResponseWriter, r *http.Request, ownerID int64) {
	units, err := h.Ledger.Box(r.Context(), ownerID)
	if err != nil {
		h.Logger.Errorw("box: list failed", "owner_id", ownerID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeUnits(w, units)
}

func (h *InventoryHandler) writeUnits(w http.ResponseWriter, units []model.InventoryUnit) {
	dtos := make([]UnitDTO, 0, len(units))
	for i := range units {
		dtos = append(dtos, toUnitDTO(&units[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}
