package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"DeckBox/internal/middleware"
	"DeckBox/internal/service"

	"go.uber.org/zap"
)

// ImportHandler ingests decklist text into the caller's Box.
type ImportHandler struct {
	Importer *service.Importer
	Logger   *zap.SugaredLogger
}

// NewImportHandler creates the import handler.
func NewImportHandler(importer *service.Importer, logger *zap.SugaredLogger) *ImportHandler {
	return &ImportHandler{Importer: importer, Logger: logger}
}

// ImportRequest carries the pasted decklist.
type ImportRequest struct {
	Text string `json:"text"`
}

// Import handles POST /api/import. The body is either a JSON object with a
// "text" field or raw decklist text.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	text := string(body)
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req ImportRequest
		if err := json.Unmarshal(body, &req); err != nil {
			h.Logger.Warnw("import: invalid request body", "error", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		http.Error(w, "empty decklist", http.StatusBadRequest)
		return
	}

	result, err := h.Importer.Import(r.Context(), text, userID)
	if err != nil {
		h.Logger.Errorw("import: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
