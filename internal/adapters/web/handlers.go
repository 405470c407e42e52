package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"portal-coordinadores/internal/app"
)

// Handler holds the PortalService and the chi router.
type Handler struct {
	svc       app.PortalService
	router    chi.Router
	jwtSecret string
	log       *logrus.Logger
}

// NewHandler creates and wires the chi router with all portal routes.
func NewHandler(svc app.PortalService, allowedOrigins, jwtSecret string, log *logrus.Logger) http.Handler {
	h := &Handler{svc: svc, jwtSecret: jwtSecret, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	// ── Public ───────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/magic-link", h.requestMagicLink)
	r.Get("/auth/consume", h.consumeMagicLink)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected API (401 JSON when unauthenticated) ────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Kardex
		r.Get("/api/kardex/pending", h.pendingKardex)
		r.Post("/api/kardex/batch", h.kardexBatch)

		// Reporting
		r.Get("/api/balances", h.centerBalances)
		r.Get("/api/map", h.municipalityMap)

		// Orders
		r.Post("/api/orders/preview", h.previewOrder)
		r.Post("/api/orders", h.commitOrder)
		r.Get("/api/orders", h.listOrders)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Patch("/api/orders/{id}", h.updateOrder)

		// Master data lookups
		r.Get("/api/catalogo", h.catalog)
		r.Get("/api/terceros", h.searchTerceros)
		r.Get("/api/municipios", h.searchMunicipalities)

		// Activities
		r.Get("/api/actividades", h.listActivities)
		r.Post("/api/actividades", h.registerActivity)
		r.Patch("/api/actividades/{id}", h.updateActivity)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false, writing an
// error response, on failure. Returns HTTP 413 when the body exceeds the
// limit set by RequestBodyLimit.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, "request body too large", "PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
