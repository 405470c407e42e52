package app

import (
	"context"

	"portal-coordinadores/internal/core"
)

// PortalService is the single interface the web adapter calls. It owns the
// portal's presentation policies: read failures against the remote store
// degrade to empty collections (logged, never surfaced as errors), while
// write failures propagate. Implementations contain no HTTP concerns.
type PortalService interface {
	// RequestMagicLink looks up the coordinator by email and, when one
	// exists, issues a one-time login token and mails the link. Unknown
	// emails are not an error; the caller cannot distinguish them.
	RequestMagicLink(ctx context.Context, email string) error

	// ConsumeMagicLink redeems a one-time token and returns the
	// authenticated coordinator.
	ConsumeMagicLink(ctx context.Context, token string) (*core.Coordinator, error)

	// Me returns the coordinator behind an authenticated session.
	Me(ctx context.Context, coordinatorID string) (*core.Coordinator, error)

	// PendingKardex lists the coordinator's movements eligible for an
	// order. Degrades to empty on fetch failure.
	PendingKardex(ctx context.Context, coordinatorID string) *KardexListResult

	// KardexByIDs batch-fetches movements for draft building. Movements
	// not owned by coordinatorID are dropped from the result. Degrades to
	// empty on fetch failure.
	KardexByIDs(ctx context.Context, coordinatorID string, ids []string) *KardexListResult

	// CenterBalances reduces the whole ledger into per-center balances.
	// Degrades to empty on fetch failure.
	CenterBalances(ctx context.Context) *BalanceResult

	// PreviewDraft prices a draft without touching the store.
	PreviewDraft(draft core.OrderDraft) *DraftPreviewResult

	// CommitOrder validates and persists a draft as an order.
	CommitOrder(ctx context.Context, req CommitOrderRequest) (*core.CommitResult, error)

	// ListOrders returns the coordinator's orders. Degrades to empty.
	ListOrders(ctx context.Context, coordinatorID string) *OrderListResult

	// GetOrder returns one order with items, enforcing ownership.
	GetOrder(ctx context.Context, id, coordinatorID string) (*OrderDetailResult, error)

	// UpdateOrder patches an order still in Borrador.
	UpdateOrder(ctx context.Context, id, coordinatorID string, patch core.OrderHeaderPatch) (*core.Order, error)

	// Catalog lists active catalog services. Degrades to empty.
	Catalog(ctx context.Context) *CatalogResult

	// SearchTerceros is the beneficiary typeahead. Degrades to empty.
	SearchTerceros(ctx context.Context, query string) *TerceroListResult

	// SearchMunicipalities is the municipality typeahead. Degrades to empty.
	SearchMunicipalities(ctx context.Context, query string) *MunicipalityListResult

	// RegisterActivity creates a field activity for the coordinator.
	RegisterActivity(ctx context.Context, coordinatorID string, a core.Activity) (*core.Activity, error)

	// ListActivities returns the coordinator's activities. Degrades to empty.
	ListActivities(ctx context.Context, coordinatorID string) *ActivityListResult

	// UpdateActivity rewrites an activity the coordinator owns.
	UpdateActivity(ctx context.Context, id, coordinatorID string, a core.Activity) (*core.Activity, error)

	// MunicipalityMap rolls activities and movements up per municipality
	// for the map view. Degrades to empty.
	MunicipalityMap(ctx context.Context) *MapResult
}
