package audit

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gp-assess/platform/internal/shared/auth"
	"github.com/gp-assess/platform/internal/shared/errors"
	"github.com/gp-assess/platform/internal/shared/types"
)

// Handler provides HTTP handlers for the audit module
type Handler struct {
	repo *Repository
}

// NewHandler creates a new audit handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes registers the audit routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/sessions/{sessionID}", h.ListForSession)
	return r
}

// ListForSession returns the activity trail for a session
func (h *Handler) ListForSession(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.UserFromContext(r.Context()); ok && !user.Can(auth.PermAuditRead) {
		writeError(w, errors.Forbidden("role "+user.Role+" may not read the audit trail"))
		return
	}

	id, err := types.ParseID(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid session ID"))
		return
	}

	entries, err := h.repo.ListBySession(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  entries,
		"total": len(entries),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
