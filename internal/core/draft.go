package core

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commit-gating validation failures.
var (
	ErrMissingBeneficiary = errors.New("order draft has no beneficiary")
	ErrNoLines            = errors.New("order draft has no lines")
)

// LineSource says where a draft line came from.
type LineSource string

const (
	SourceLedger  LineSource = "ledger"
	SourceCatalog LineSource = "catalog"
)

// OrderLineDraft is one unsaved line of an order draft.
type OrderLineDraft struct {
	ID        string          `json:"id"` // local identity, never persisted
	Source    LineSource      `json:"source"`
	RefID     string          `json:"ref_id"` // Kardex or CatalogoServicios record id
	Label     string          `json:"label"`
	Basis     ChargeBasis     `json:"basis"`
	Quantity  decimal.Decimal `json:"quantity"` // kilograms when Basis is Por Kilo
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDraft is the in-memory aggregate a coordinator assembles before
// commit. Nothing here touches the store.
type OrderDraft struct {
	PickDate  string           `json:"pick_date"` // YYYY-MM-DD
	TerceroID string           `json:"tercero_id"`
	Notes     string           `json:"notes"`
	Lines     []OrderLineDraft `json:"lines"`
}

// AddLedgerLine appends a line for a Kardex movement. Defaults: charge per
// trip, quantity = absolute total weight, unit price zero.
func (d *OrderDraft) AddLedgerLine(entry LedgerEntry) OrderLineDraft {
	line := OrderLineDraft{
		ID:        uuid.NewString(),
		Source:    SourceLedger,
		RefID:     entry.ID,
		Label:     entry.Description,
		Basis:     ChargePerTrip,
		Quantity:  decimal.NewFromFloat(math.Abs(entry.Total)),
		UnitPrice: decimal.Zero,
	}
	d.Lines = append(d.Lines, line)
	return line
}

// AddCatalogLine appends a line for a catalog service. Defaults: charge per
// trip, quantity one, unit price = the service's suggested price.
func (d *OrderDraft) AddCatalogLine(svc CatalogService) OrderLineDraft {
	line := OrderLineDraft{
		ID:        uuid.NewString(),
		Source:    SourceCatalog,
		RefID:     svc.ID,
		Label:     svc.Name,
		Basis:     ChargePerTrip,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: svc.SuggestedPrice,
	}
	d.Lines = append(d.Lines, line)
	return line
}

// RemoveLine deletes the line with the given id. Removing an absent line
// is a no-op.
func (d *OrderDraft) RemoveLine(lineID string) {
	for i, l := range d.Lines {
		if l.ID == lineID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return
		}
	}
}

// LinePatch carries the mutable fields of a draft line. Nil means "leave
// unchanged". No cross-field validation happens here; that is deferred to
// commit time.
type LinePatch struct {
	Basis     *ChargeBasis
	Quantity  *decimal.Decimal
	UnitPrice *decimal.Decimal
}

// UpdateLine applies patch to the line with the given id and reports
// whether it was found.
func (d *OrderDraft) UpdateLine(lineID string, patch LinePatch) bool {
	for i := range d.Lines {
		if d.Lines[i].ID != lineID {
			continue
		}
		if patch.Basis != nil {
			d.Lines[i].Basis = *patch.Basis
		}
		if patch.Quantity != nil {
			d.Lines[i].Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			d.Lines[i].UnitPrice = *patch.UnitPrice
		}
		return true
	}
	return false
}

// LineSubtotal prices one line: per kilogram the quantity times the unit
// price, per trip the unit price alone (quantity ignored).
func LineSubtotal(l OrderLineDraft) decimal.Decimal {
	if l.Basis == ChargePerKilogram {
		return l.Quantity.Mul(l.UnitPrice)
	}
	return l.UnitPrice
}

// Total sums the subtotals of every line.
func (d *OrderDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(LineSubtotal(l))
	}
	return total
}

// ValidateForCommit is the sole gating check before commit: a beneficiary
// must be selected and at least one line must exist.
func (d *OrderDraft) ValidateForCommit() error {
	if d.TerceroID == "" {
		return ErrMissingBeneficiary
	}
	if len(d.Lines) == 0 {
		return ErrNoLines
	}
	return nil
}
