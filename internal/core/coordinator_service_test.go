package core

import (
	"context"
	"errors"
	"testing"

	"portal-coordinadores/internal/airtable"
)

func TestCoordinatorService_FindByEmail_CaseInsensitive(t *testing.T) {
	var gotFormula string
	store := &fakeStore{
		list: func(table string, opts airtable.ListOptions) (airtable.Page, error) {
			gotFormula = opts.FilterByFormula
			return airtable.Page{Records: []airtable.Record{{
				ID: "recC1",
				Fields: map[string]any{
					"Nombre": "Ana Torres",
					"Email":  "Ana.Torres@example.org",
				},
			}}}, nil
		},
	}
	svc := NewCoordinatorService(store)

	c, err := svc.FindByEmail(context.Background(), "  ANA.TORRES@Example.org ")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if gotFormula != "LOWER({Email}) = 'ana.torres@example.org'" {
		t.Errorf("lookup must be lowercased and trimmed: %q", gotFormula)
	}
	if c.ID != "recC1" || c.Name != "Ana Torres" {
		t.Errorf("decoded coordinator wrong: %+v", c)
	}
}

func TestCoordinatorService_FindByEmail_NotFound(t *testing.T) {
	store := &fakeStore{
		list: func(string, airtable.ListOptions) (airtable.Page, error) {
			return airtable.Page{}, nil
		},
	}
	svc := NewCoordinatorService(store)

	if _, err := svc.FindByEmail(context.Background(), "nadie@example.org"); !errors.Is(err, ErrCoordinatorNotFound) {
		t.Fatalf("expected ErrCoordinatorNotFound, got %v", err)
	}
	if _, err := svc.FindByEmail(context.Background(), "   "); !errors.Is(err, ErrCoordinatorNotFound) {
		t.Fatalf("blank email: expected ErrCoordinatorNotFound, got %v", err)
	}
}

func TestCoordinatorService_GetByID_NotFound(t *testing.T) {
	store := &fakeStore{
		get: func(table, id string) (*airtable.Record, error) {
			return nil, airtable.ErrNotFound
		},
	}
	svc := NewCoordinatorService(store)

	if _, err := svc.GetByID(context.Background(), "recMissing"); !errors.Is(err, ErrCoordinatorNotFound) {
		t.Fatalf("expected ErrCoordinatorNotFound, got %v", err)
	}
}
