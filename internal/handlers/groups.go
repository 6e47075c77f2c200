package handlers

import (
	"net/http"

	"DeckBox/internal/middleware"
	"DeckBox/internal/service"

	"go.uber.org/zap"
)

// GroupHandler lists the caller's group-mates.
type GroupHandler struct {
	Access *service.Access
	Logger *zap.SugaredLogger
}

// NewGroupHandler creates the group handler.
func NewGroupHandler(access *service.Access, logger *zap.SugaredLogger) *GroupHandler {
	return &GroupHandler{Access: access, Logger: logger}
}

// GroupmateDTO is one group-mate in the response.
type GroupmateDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Groupmates handles GET /api/groupmates: everyone sharing a group with the
// caller, deduplicated.
func (h *GroupHandler) Groupmates(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	mates, err := h.Access.Groupmates(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("groupmates: list failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	dtos := make([]GroupmateDTO, 0, len(mates))
	for _, u := range mates {
		dtos = append(dtos, GroupmateDTO{ID: u.ID, Username: u.Username})
	}
	writeJSON(w, http.StatusOK, dtos)
}
