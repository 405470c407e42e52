package web

import (
	"net/http"

	"portal-coordinadores/internal/app"
	"portal-coordinadores/internal/core"
)

// previewOrder handles POST /api/orders/preview — prices a draft without
// writing anything.
func (h *Handler) previewOrder(w http.ResponseWriter, r *http.Request) {
	var draft core.OrderDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	writeJSON(w, h.svc.PreviewDraft(draft))
}

// commitOrder handles POST /api/orders — persists a draft. The response is
// 201 even on a partial commit; the step ledger tells the client which
// sub-steps failed.
func (h *Handler) commitOrder(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req app.CommitOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CoordinatorID = claims.CoordinatorID

	result, err := h.svc.CommitOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// listOrders handles GET /api/orders.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	writeJSON(w, h.svc.ListOrders(r.Context(), claims.CoordinatorID))
}

// getOrder handles GET /api/orders/{id}.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	detail, err := h.svc.GetOrder(r.Context(), urlID(r), claims.CoordinatorID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

// updateOrder handles PATCH /api/orders/{id} — edits a header still in
// Borrador, optionally submitting it.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		PickDate  *string `json:"pick_date"`
		TerceroID *string `json:"tercero_id"`
		Notes     *string `json:"notes"`
		Submit    bool    `json:"submit"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.svc.UpdateOrder(r.Context(), urlID(r), claims.CoordinatorID, core.OrderHeaderPatch{
		PickDate:  req.PickDate,
		TerceroID: req.TerceroID,
		Notes:     req.Notes,
		Submit:    req.Submit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, order)
}
