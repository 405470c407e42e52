package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portal-coordinadores/internal/airtable"
)

func kardexRecord(id string, fields map[string]any) airtable.Record {
	return airtable.Record{ID: id, Fields: fields}
}

func TestKardexService_PendingPaymentEntries(t *testing.T) {
	var gotTable, gotFormula, gotSortField, gotSortDir string
	store := &fakeStore{
		list: func(table string, opts airtable.ListOptions) (airtable.Page, error) {
			gotTable = table
			gotFormula = opts.FilterByFormula
			if len(opts.Sort) == 1 {
				gotSortField = opts.Sort[0].Field
				gotSortDir = opts.Sort[0].Direction
			}
			return airtable.Page{Records: []airtable.Record{
				kardexRecord("recK1", map[string]any{
					"Numero":         12.0,
					"Fecha":          "2026-08-20",
					"Tipo Movimiento": "Entrada",
					"Coordinador":    []any{"recC1"},
					"Centro de Acopio": "Acopio Norte",
					"Reciclaje":      60.0,
					"Total":          100.0,
					"Estado de Pago": "Por Pagar",
				}),
			}}, nil
		},
	}

	entries, err := NewKardexService(store).PendingPaymentEntries(context.Background(), "recC1")
	if err != nil {
		t.Fatalf("PendingPaymentEntries failed: %v", err)
	}
	if gotTable != "Kardex" {
		t.Errorf("queried table %q", gotTable)
	}
	if !strings.Contains(gotFormula, "'Por Pagar'") || !strings.Contains(gotFormula, "recC1") {
		t.Errorf("filter formula incomplete: %q", gotFormula)
	}
	if gotSortField != "Fecha" || gotSortDir != "desc" {
		t.Errorf("expected Fecha desc sort, got %s %s", gotSortField, gotSortDir)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Number != 12 || e.Kind != MovementEntry || e.State != PaymentPending {
		t.Errorf("decoded entry wrong: %+v", e)
	}
	if e.Center != "Acopio Norte" || e.Materials.Reciclaje != 60 || e.Total != 100 {
		t.Errorf("decoded entry wrong: %+v", e)
	}
	if !e.OwnedBy("recC1") {
		t.Error("OwnedBy should match the linked coordinator")
	}
}

func TestKardexService_EntriesByIDs_EmptySetSkipsStore(t *testing.T) {
	// No list function scripted: any store call would panic.
	svc := NewKardexService(&fakeStore{})

	entries, err := svc.EntriesByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("EntriesByIDs failed: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestKardexService_EntriesByIDs_BatchFormula(t *testing.T) {
	var gotFormula string
	store := &fakeStore{
		list: func(table string, opts airtable.ListOptions) (airtable.Page, error) {
			gotFormula = opts.FilterByFormula
			return airtable.Page{}, nil
		},
	}

	_, err := NewKardexService(store).EntriesByIDs(context.Background(), []string{"recA", "recB"})
	if err != nil {
		t.Fatalf("EntriesByIDs failed: %v", err)
	}
	want := "OR(RECORD_ID() = 'recA', RECORD_ID() = 'recB')"
	if gotFormula != want {
		t.Errorf("formula: expected %q, got %q", want, gotFormula)
	}
}

func TestKardexService_AllEntries_PropagatesError(t *testing.T) {
	transport := errors.New("connection refused")
	store := &fakeStore{
		list: func(string, airtable.ListOptions) (airtable.Page, error) {
			return airtable.Page{}, transport
		},
	}

	_, err := NewKardexService(store).AllEntries(context.Background())
	if !errors.Is(err, transport) {
		t.Fatalf("the core service must surface fetch failures, got %v", err)
	}
}

func TestKardexService_MarkInOrder(t *testing.T) {
	state := "Por Pagar"
	var patched map[string]any
	store := &fakeStore{
		get: func(table, id string) (*airtable.Record, error) {
			return &airtable.Record{ID: id, Fields: map[string]any{
				"Estado de Pago": state,
				"Coordinador":    []any{"recC1"},
			}}, nil
		},
		update: func(table, id string, fields map[string]any) (*airtable.Record, error) {
			patched = fields
			return &airtable.Record{ID: id, Fields: fields}, nil
		},
	}
	svc := NewKardexService(store)

	if err := svc.MarkInOrder(context.Background(), "recK1", "recC1"); err != nil {
		t.Fatalf("MarkInOrder failed: %v", err)
	}
	if patched["Estado de Pago"] != "En Orden" {
		t.Errorf("expected En Orden patch, got %v", patched)
	}

	// Re-read guard: a concurrent commit already took the entry.
	state = "En Orden"
	err := svc.MarkInOrder(context.Background(), "recK1", "recC1")
	if !errors.Is(err, ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict, got %v", err)
	}
}

func TestKardexService_MarkInOrder_ChecksOwnership(t *testing.T) {
	store := &fakeStore{
		get: func(table, id string) (*airtable.Record, error) {
			return &airtable.Record{ID: id, Fields: map[string]any{
				"Estado de Pago": "Por Pagar",
				"Coordinador":    []any{"recOther"},
			}}, nil
		},
		// update unscripted: a write to a foreign movement must panic.
	}
	svc := NewKardexService(store)

	err := svc.MarkInOrder(context.Background(), "recK1", "recC1")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
