package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"DeckBox/internal/middleware"
	"DeckBox/internal/service"

	"go.uber.org/zap"
)

// TransferHandler takes cards from a group-mate's Box into the caller's
// deck.
type TransferHandler struct {
	Transfers *service.TransferService
	Logger    *zap.SugaredLogger
}

// NewTransferHandler creates the transfer handler.
func NewTransferHandler(transfers *service.TransferService, logger *zap.SugaredLogger) *TransferHandler {
	return &TransferHandler{Transfers: transfers, Logger: logger}
}

// TransferRequest names the source unit, the caller's destination deck, and
// the quantity to take.
type TransferRequest struct {
	SourceUnitID int64 `json:"source_unit_id"`
	DeckID       int64 `json:"deck_id"`
	Quantity     int   `json:"quantity"`
}

// Transfer handles POST /api/transfer. Denials come back as 403 with a
// single machine-readable reason; the ledger is untouched on any failure.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("transfer: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.Transfers.Transfer(r.Context(), actorID, req.SourceUnitID, req.DeckID, req.Quantity)
	if err != nil {
		var denied *service.DeniedError
		if errors.As(err, &denied) {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"ok":     false,
				"reason": string(denied.Reason),
			})
			return
		}
		h.Logger.Errorw("transfer: service error", "actor_id", actorID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
