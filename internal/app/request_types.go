package app

import "portal-coordinadores/internal/core"

// CommitOrderRequest carries everything needed to persist a draft.
type CommitOrderRequest struct {
	Draft         core.OrderDraft `json:"draft"`
	CoordinatorID string          `json:"-"`
	Submit        bool            `json:"submit"` // request Enviada instead of Borrador
}
