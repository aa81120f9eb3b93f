package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gp-assess/platform/internal/assessment"
	"github.com/gp-assess/platform/internal/render"
	"github.com/gp-assess/platform/internal/shared/auth"
	"github.com/gp-assess/platform/internal/shared/errors"
	"github.com/gp-assess/platform/internal/shared/events"
	"github.com/gp-assess/platform/internal/shared/metrics"
	"github.com/gp-assess/platform/internal/shared/types"
)

// Handler provides HTTP handlers for the session module
type Handler struct {
	repo *Repository
	svc  *assessment.Service
	bus  *events.Bus
}

// NewHandler creates a new session handler
func NewHandler(repo *Repository, svc *assessment.Service, bus *events.Bus) *Handler {
	return &Handler{repo: repo, svc: svc, bus: bus}
}

// Routes registers the session routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListSessions)
	r.Post("/", h.CreateSession)

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Put("/fields", h.UpdateField)
		r.Delete("/", h.ClearSession)
		r.Get("/document", h.ExportDocument)
	})

	return r
}

// CreateSessionRequest opens a new session. When a saved session already
// exists for the assessment and DiscardExisting is false, the create is
// rejected with 409 and the existing session's summary so the client can
// offer restore-or-discard.
type CreateSessionRequest struct {
	Assessment      string `json:"assessment"`
	PatientName     string `json:"patient_name,omitempty"`
	DiscardExisting bool   `json:"discard_existing"`
}

// SessionResponse is the full session plus everything the form layer
// derives from it.
type SessionResponse struct {
	*Session
	Derived     map[string]string `json:"derived"`
	RuleTargets []string          `json:"rule_targets"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, def assessment.Definition, s *Session) {
	writeJSON(w, status, SessionResponse{
		Session:     s,
		Derived:     h.svc.DerivedValues(def, s.State),
		RuleTargets: def.RuleTargets(),
	})
}

// ListSessions lists saved sessions without their field values,
// optionally filtered by ?assessment=
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.repo.List(r.Context(), r.URL.Query().Get("assessment"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  summaries,
		"total": len(summaries),
	})
}

// CreateSession opens a session for an assessment
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if err := authorize(r, auth.PermSessionCreate); err != nil {
		writeError(w, err)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	def, ok := assessment.Get(req.Assessment)
	if !ok {
		writeError(w, errors.BadRequest("unknown assessment: "+req.Assessment))
		return
	}

	existing, err := h.repo.GetByAssessment(r.Context(), def.ID)
	if err != nil && !errors.IsNotFound(err) {
		writeError(w, err)
		return
	}

	if existing != nil {
		if !req.DiscardExisting {
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":    "a saved session already exists for this assessment",
				"existing": existing.Summarize(),
			})
			return
		}
		if err := h.repo.Delete(r.Context(), existing.ID); err != nil {
			writeError(w, err)
			return
		}
		h.publish(r.Context(), events.TypeSessionCleared, existing, nil)
	}

	s := New(def.ID)
	if req.PatientName != "" {
		s.State.Set("patient-name", req.PatientName)
	}
	if err := h.repo.Save(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}

	h.publish(r.Context(), events.TypeSessionCreated, s, nil)
	metrics.RecordSessionCreated(s.Assessment)

	h.respond(w, http.StatusCreated, def, s)
}

// GetSession returns a session with its derived values. A stale schema
// version is reported, not rejected; the client decides what to do.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, def, err := h.load(r)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respond(w, http.StatusOK, def, s)
}

// UpdateFieldRequest sets one field. A null or empty value clears it.
type UpdateFieldRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// UpdateField sets one field, reruns the rule tables and persists the
// whole session
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	if err := authorize(r, auth.PermSessionUpdate); err != nil {
		writeError(w, err)
		return
	}

	s, def, err := h.load(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}
	if req.Key == "" {
		writeError(w, errors.Validation("validation failed", map[string]string{
			"key": "key is required",
		}))
		return
	}

	s.State.Set(req.Key, req.Value)
	s.Generated = h.svc.Regenerate(def, s.State, s.Generated)
	metrics.RecordRuleEvaluation(def.ID)

	if err := h.repo.Save(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}

	h.publish(r.Context(), events.TypeFieldUpdated, s, map[string]string{
		"field_key": req.Key,
	})
	metrics.RecordFieldUpdated(s.Assessment)

	h.respond(w, http.StatusOK, def, s)
}

// ClearSession deletes a session and its saved state
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if err := authorize(r, auth.PermSessionClear); err != nil {
		writeError(w, err)
		return
	}

	s, _, err := h.load(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.Delete(r.Context(), s.ID); err != nil {
		writeError(w, err)
		return
	}

	h.publish(r.Context(), events.TypeSessionCleared, s, nil)
	metrics.RecordSessionCleared(s.Assessment)

	w.WriteHeader(http.StatusNoContent)
}

// ExportDocument serializes the session as a downloadable document.
// ?format=text|rtf, defaulting to rtf.
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	if err := authorize(r, auth.PermDocumentExport); err != nil {
		writeError(w, err)
		return
	}

	s, def, err := h.load(r)
	if err != nil {
		writeError(w, err)
		return
	}

	format := render.FormatRTF
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, ok := render.ParseFormat(q)
		if !ok {
			writeError(w, errors.BadRequest("unsupported format: "+q))
			return
		}
		format = parsed
	}

	export := h.svc.ExportDocument(def, s.State, format)

	h.publish(r.Context(), events.TypeDocumentExported, s, map[string]string{
		"format": string(format),
	})
	metrics.RecordDocumentExported(s.Assessment, string(format))

	w.Header().Set("Content-Type", export.MIME)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}

// authorize enforces role permissions when a practitioner identity is
// present. Without the auth middleware (dev mode) there is no user in
// the context and every action is allowed.
func authorize(r *http.Request, perm auth.Permission) error {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	if !user.Can(perm) {
		return errors.Forbidden("role " + user.Role + " may not " + string(perm))
	}
	return nil
}

// load resolves the session from the URL and its assessment definition
func (h *Handler) load(r *http.Request) (*Session, assessment.Definition, error) {
	id, err := types.ParseID(chi.URLParam(r, "sessionID"))
	if err != nil {
		return nil, assessment.Definition{}, errors.BadRequest("invalid session ID")
	}

	s, err := h.repo.Get(r.Context(), id)
	if err != nil {
		return nil, assessment.Definition{}, err
	}

	def, ok := assessment.Get(s.Assessment)
	if !ok {
		return nil, assessment.Definition{}, errors.Internal(
			fmt.Errorf("session %s references unknown assessment %q", s.ID, s.Assessment))
	}

	return s, def, nil
}

func (h *Handler) publish(ctx context.Context, eventType string, s *Session, data map[string]string) {
	if h.bus == nil {
		return
	}
	event := events.NewEvent(eventType, "session", data).
		WithSession(s.ID, s.Assessment)
	h.bus.Publish(ctx, event)
}

// --- Helpers ---

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
