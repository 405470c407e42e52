package web

import "net/http"

// pendingKardex handles GET /api/kardex/pending — the coordinator's
// movements still in Por Pagar.
func (h *Handler) pendingKardex(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	writeJSON(w, h.svc.PendingKardex(r.Context(), claims.CoordinatorID))
}

// kardexBatch handles POST /api/kardex/batch — fetches a set of movements
// by record id for draft building. Only the caller's own movements are
// returned.
func (h *Handler) kardexBatch(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, h.svc.KardexByIDs(r.Context(), claims.CoordinatorID, req.IDs))
}

// centerBalances handles GET /api/balances — per-center money and material
// balances over the whole ledger.
func (h *Handler) centerBalances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.CenterBalances(r.Context()))
}

// municipalityMap handles GET /api/map — per-municipality activity and
// collection roll-up for the map view.
func (h *Handler) municipalityMap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.MunicipalityMap(r.Context()))
}
