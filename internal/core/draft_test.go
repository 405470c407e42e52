package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderDraft_AddLedgerLineDefaults(t *testing.T) {
	var d OrderDraft
	line := d.AddLedgerLine(LedgerEntry{
		ID:          "recK1",
		Kind:        MovementExit,
		Total:       -120,
		Description: "Salida centro norte",
	})

	if line.Source != SourceLedger || line.RefID != "recK1" {
		t.Errorf("unexpected line source/ref: %+v", line)
	}
	if line.Basis != ChargePerTrip {
		t.Errorf("default basis should be Por Viaje, got %s", line.Basis)
	}
	if !line.Quantity.Equal(decimal.NewFromInt(120)) {
		t.Errorf("quantity should be |total| = 120, got %s", line.Quantity)
	}
	if !line.UnitPrice.IsZero() {
		t.Errorf("default unit price should be zero, got %s", line.UnitPrice)
	}
	if len(d.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(d.Lines))
	}
}

func TestOrderDraft_AddCatalogLineDefaults(t *testing.T) {
	var d OrderDraft
	line := d.AddCatalogLine(CatalogService{
		ID:             "recS1",
		Name:           "Flete",
		SuggestedPrice: decimal.NewFromInt(30000),
	})

	if line.Basis != ChargePerTrip {
		t.Errorf("default basis should be Por Viaje, got %s", line.Basis)
	}
	if !line.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Errorf("default quantity should be 1, got %s", line.Quantity)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("unit price should default to suggested price, got %s", line.UnitPrice)
	}
}

func TestLineSubtotal(t *testing.T) {
	perKg := OrderLineDraft{
		Basis:     ChargePerKilogram,
		Quantity:  decimal.NewFromInt(120),
		UnitPrice: decimal.NewFromInt(500),
	}
	if got := LineSubtotal(perKg); !got.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("per-kilogram subtotal: expected 60000, got %s", got)
	}

	perTrip := OrderLineDraft{
		Basis:     ChargePerTrip,
		Quantity:  decimal.NewFromInt(999),
		UnitPrice: decimal.NewFromInt(80000),
	}
	if got := LineSubtotal(perTrip); !got.Equal(decimal.NewFromInt(80000)) {
		t.Errorf("per-trip subtotal must ignore quantity: expected 80000, got %s", got)
	}
}

func TestOrderDraft_TotalIsOrderIndependent(t *testing.T) {
	a := OrderLineDraft{ID: "a", Basis: ChargePerKilogram, Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(1000)}
	b := OrderLineDraft{ID: "b", Basis: ChargePerTrip, UnitPrice: decimal.NewFromInt(30000)}
	c := OrderLineDraft{ID: "c", Basis: ChargePerKilogram, Quantity: decimal.NewFromFloat(2.5), UnitPrice: decimal.NewFromInt(800)}

	d1 := OrderDraft{Lines: []OrderLineDraft{a, b, c}}
	d2 := OrderDraft{Lines: []OrderLineDraft{c, a, b}}

	want := decimal.NewFromInt(82000)
	if got := d1.Total(); !got.Equal(want) {
		t.Errorf("total: expected %s, got %s", want, got)
	}
	if !d1.Total().Equal(d2.Total()) {
		t.Errorf("total must not depend on line order: %s vs %s", d1.Total(), d2.Total())
	}
}

func TestOrderDraft_RemoveLineIdempotent(t *testing.T) {
	var d OrderDraft
	line := d.AddCatalogLine(CatalogService{ID: "recS1", SuggestedPrice: decimal.NewFromInt(100)})

	d.RemoveLine(line.ID)
	if len(d.Lines) != 0 {
		t.Fatalf("expected empty draft, got %d lines", len(d.Lines))
	}
	d.RemoveLine(line.ID) // absent: no-op, no panic
	d.RemoveLine("never-existed")
}

func TestOrderDraft_UpdateLine(t *testing.T) {
	var d OrderDraft
	line := d.AddLedgerLine(LedgerEntry{ID: "recK1", Total: 50})

	basis := ChargePerKilogram
	price := decimal.NewFromInt(1000)
	if !d.UpdateLine(line.ID, LinePatch{Basis: &basis, UnitPrice: &price}) {
		t.Fatal("UpdateLine should find the line")
	}
	if d.Lines[0].Basis != ChargePerKilogram || !d.Lines[0].UnitPrice.Equal(price) {
		t.Errorf("patch not applied: %+v", d.Lines[0])
	}
	if !d.Lines[0].Quantity.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unpatched field changed: %s", d.Lines[0].Quantity)
	}
	if d.UpdateLine("missing", LinePatch{Basis: &basis}) {
		t.Error("UpdateLine on a missing line should report false")
	}
}

func TestOrderDraft_ValidateForCommit(t *testing.T) {
	var d OrderDraft
	d.AddCatalogLine(CatalogService{ID: "recS1"})

	if err := d.ValidateForCommit(); !errors.Is(err, ErrMissingBeneficiary) {
		t.Errorf("no beneficiary: expected ErrMissingBeneficiary, got %v", err)
	}

	empty := OrderDraft{TerceroID: "recT1"}
	if err := empty.ValidateForCommit(); !errors.Is(err, ErrNoLines) {
		t.Errorf("no lines: expected ErrNoLines, got %v", err)
	}

	d.TerceroID = "recT1"
	if err := d.ValidateForCommit(); err != nil {
		t.Errorf("valid draft: unexpected error %v", err)
	}
}
