package web

import (
	"net/http"

	"portal-coordinadores/internal/core"
)

// listActivities handles GET /api/actividades.
func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	writeJSON(w, h.svc.ListActivities(r.Context(), claims.CoordinatorID))
}

// registerActivity handles POST /api/actividades.
func (h *Handler) registerActivity(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var a core.Activity
	if !decodeJSON(w, r, &a) {
		return
	}

	created, err := h.svc.RegisterActivity(r.Context(), claims.CoordinatorID, a)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, created)
}

// updateActivity handles PATCH /api/actividades/{id}.
func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var a core.Activity
	if !decodeJSON(w, r, &a) {
		return
	}

	updated, err := h.svc.UpdateActivity(r.Context(), urlID(r), claims.CoordinatorID, a)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, updated)
}
