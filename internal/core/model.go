package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind is the direction of a Kardex movement.
type MovementKind string

const (
	MovementEntry MovementKind = "Entrada"
	MovementExit  MovementKind = "Salida"
)

// PaymentState is the payment lifecycle flag on a Kardex movement.
// PaymentInOrder is reachable only through order commit and is never
// reverted by this workflow.
type PaymentState string

const (
	PaymentPettyCash PaymentState = "Caja Menor"
	PaymentNoCost    PaymentState = "Sin Costo"
	PaymentPending   PaymentState = "Por Pagar"
	PaymentInOrder   PaymentState = "En Orden"
)

// Coordinator is a field coordinator identity, provisioned administratively
// at the store and read-only here. Email is the case-insensitive lookup key.
type Coordinator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MaterialWeights holds the per-material kilogram fields of a movement.
// Weights are plain floating point; they are not monetary values.
type MaterialWeights struct {
	Reciclaje           float64 `json:"reciclaje"`
	Incineracion        float64 `json:"incineracion"`
	PlasticoContaminado float64 `json:"plastico_contaminado"`
	Flexibles           float64 `json:"flexibles"`
	Carpas              float64 `json:"carpas"`
	Carton              float64 `json:"carton"`
	Metal               float64 `json:"metal"`
}

// Add accumulates w scaled by sign into m.
func (m *MaterialWeights) Add(w MaterialWeights, sign float64) {
	m.Reciclaje += sign * w.Reciclaje
	m.Incineracion += sign * w.Incineracion
	m.PlasticoContaminado += sign * w.PlasticoContaminado
	m.Flexibles += sign * w.Flexibles
	m.Carpas += sign * w.Carpas
	m.Carton += sign * w.Carton
	m.Metal += sign * w.Metal
}

// LedgerEntry is one Kardex inventory movement. Total carries the sign of
// the movement kind: non-negative for Entrada, non-positive for Salida.
type LedgerEntry struct {
	ID              string          `json:"id"`
	Number          int             `json:"number"` // sequential display number
	Date            string          `json:"date"`   // YYYY-MM-DD
	Kind            MovementKind    `json:"kind"`
	CoordinatorIDs  []string        `json:"coordinator_ids"`
	MunicipalityIDs []string        `json:"municipality_ids"`
	Center          string          `json:"center"` // collection center, optional
	Materials       MaterialWeights `json:"materials"`
	Total           float64         `json:"total"` // signed kilograms
	State           PaymentState    `json:"state"`
	Description     string          `json:"description"`
}

// OwnedBy reports whether coordinatorID appears in the entry's owning
// coordinator references.
func (e *LedgerEntry) OwnedBy(coordinatorID string) bool {
	for _, id := range e.CoordinatorIDs {
		if id == coordinatorID {
			return true
		}
	}
	return false
}

// CatalogService is a reusable priced service definition, read-only here.
type CatalogService struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Unit           string          `json:"unit"`
	Active         bool            `json:"active"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
}

// Tercero is the payee or counterparty of an order. Selected during
// drafting, never created by this workflow.
type Tercero struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Municipality is one MUNICIPIOS row. MunDep is the denormalized
// "municipality - department" display label used for typeahead search.
type Municipality struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	MunDep     string `json:"mundep"`
}

// OrderState is the lifecycle state of a service order. This workflow only
// produces Borrador and Enviada; the remaining states are set elsewhere.
type OrderState string

const (
	OrderBorrador  OrderState = "Borrador"
	OrderEnviada   OrderState = "Enviada"
	OrderAprobada  OrderState = "Aprobada"
	OrderPagada    OrderState = "Pagada"
	OrderRechazada OrderState = "Rechazada"
)

// ChargeBasis determines how a line is priced: per trip the unit price
// stands alone, per kilogram it is multiplied by the quantity.
type ChargeBasis string

const (
	ChargePerTrip     ChargeBasis = "Por Viaje"
	ChargePerKilogram ChargeBasis = "Por Kilo"
)

// ItemKind tags whether an order item references a Kardex movement or a
// catalog service. Exactly one of the two references is set.
type ItemKind string

const (
	ItemWithLedger    ItemKind = "Con Kardex"
	ItemWithoutLedger ItemKind = "Sin Kardex"
)

// Order is a persisted service order header. Total is a server-computed
// rollup over the linked items and read-only from here.
type Order struct {
	ID             string          `json:"id"`
	Number         int             `json:"number"` // store-assigned autonumber
	CoordinatorIDs []string        `json:"coordinator_ids"`
	TerceroIDs     []string        `json:"tercero_ids"`
	PickDate       string          `json:"pick_date"` // YYYY-MM-DD
	State          OrderState      `json:"state"`
	Notes          string          `json:"notes"`
	ItemIDs        []string        `json:"item_ids"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OwnedBy reports whether coordinatorID appears among the order's owners.
func (o *Order) OwnedBy(coordinatorID string) bool {
	for _, id := range o.CoordinatorIDs {
		if id == coordinatorID {
			return true
		}
	}
	return false
}

// OrderItem is one persisted line of an order. Subtotal is computed at the
// store and read-only here.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderIDs  []string        `json:"order_ids"`
	Kind      ItemKind        `json:"kind"`
	KardexIDs []string        `json:"kardex_ids"` // set when Kind == Con Kardex
	ServiceID string          `json:"service_id"` // set when Kind == Sin Kardex
	Basis     ChargeBasis     `json:"basis"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CenterBalance is the derived per-center material balance. Never persisted.
type CenterBalance struct {
	Center     string          `json:"center"`
	EntryCount int             `json:"entry_count"`
	EntryKg    float64         `json:"entry_kg"`
	ExitCount  int             `json:"exit_count"`
	ExitKg     float64         `json:"exit_kg"`
	Balance    float64         `json:"balance"` // entry kg minus exit kg
	Materials  MaterialWeights `json:"materials"`
}
