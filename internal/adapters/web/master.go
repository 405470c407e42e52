package web

import "net/http"

// catalog handles GET /api/catalogo — active catalog services.
func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Catalog(r.Context()))
}

// searchTerceros handles GET /api/terceros?q=... — beneficiary typeahead.
func (h *Handler) searchTerceros(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, h.svc.SearchTerceros(r.Context(), q))
}

// searchMunicipalities handles GET /api/municipios?q=...
func (h *Handler) searchMunicipalities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, h.svc.SearchMunicipalities(r.Context(), q))
}
