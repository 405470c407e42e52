package app

import (
	"github.com/shopspring/decimal"

	"portal-coordinadores/internal/core"
)

// KardexListResult is returned by the kardex read operations. Degraded is
// true when the list is empty because the fetch failed rather than because
// the ledger is empty.
type KardexListResult struct {
	Entries  []core.LedgerEntry `json:"entries"`
	Degraded bool               `json:"degraded"`
}

// BalanceResult is returned by CenterBalances.
type BalanceResult struct {
	Balances []core.CenterBalance `json:"balances"`
	Degraded bool                 `json:"degraded"`
}

// PricedLine is one draft line with its computed subtotal.
type PricedLine struct {
	Line     core.OrderLineDraft `json:"line"`
	Subtotal decimal.Decimal     `json:"subtotal"`
}

// DraftPreviewResult is returned by PreviewDraft.
type DraftPreviewResult struct {
	Lines []PricedLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders   []core.Order `json:"orders"`
	Degraded bool         `json:"degraded"`
}

// OrderDetailResult is returned by GetOrder.
type OrderDetailResult struct {
	Order *core.Order      `json:"order"`
	Items []core.OrderItem `json:"items"`
}

// CatalogResult is returned by Catalog.
type CatalogResult struct {
	Services []core.CatalogService `json:"services"`
	Degraded bool                  `json:"degraded"`
}

// TerceroListResult is returned by SearchTerceros.
type TerceroListResult struct {
	Terceros []core.Tercero `json:"terceros"`
	Degraded bool           `json:"degraded"`
}

// MunicipalityListResult is returned by SearchMunicipalities.
type MunicipalityListResult struct {
	Municipalities []core.Municipality `json:"municipalities"`
	Degraded       bool                `json:"degraded"`
}

// ActivityListResult is returned by ListActivities.
type ActivityListResult struct {
	Activities []core.Activity `json:"activities"`
	Degraded   bool            `json:"degraded"`
}

// MapResult is returned by MunicipalityMap.
type MapResult struct {
	Stats    []core.MunicipalityStat `json:"stats"`
	Degraded bool                    `json:"degraded"`
}
