package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portal-coordinadores/internal/airtable"
)

// ErrCoordinatorNotFound indicates no coordinator record matches the lookup.
var ErrCoordinatorNotFound = errors.New("coordinator not found")

// CoordinatorService is the session/identity gate: it maps an authenticated
// email to the durable coordinator record. Coordinators are provisioned
// externally; this service only reads.
type CoordinatorService interface {
	// FindByEmail resolves a coordinator by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*Coordinator, error)
	// GetByID fetches a coordinator by record id.
	GetByID(ctx context.Context, id string) (*Coordinator, error)
}

type coordinatorService struct {
	store airtable.API
}

// NewCoordinatorService constructs a CoordinatorService over the store.
func NewCoordinatorService(store airtable.API) CoordinatorService {
	return &coordinatorService{store: store}
}

func (s *coordinatorService) FindByEmail(ctx context.Context, email string) (*Coordinator, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, ErrCoordinatorNotFound
	}

	formula := fmt.Sprintf("LOWER({Email}) = '%s'", airtable.EscapeFormulaString(normalized))
	page, err := s.store.List(ctx, tableCoordinadores, airtable.ListOptions{
		FilterByFormula: formula,
		MaxRecords:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("find coordinator by email: %w", err)
	}
	if len(page.Records) == 0 {
		return nil, ErrCoordinatorNotFound
	}
	return coordinatorFromRecord(&page.Records[0]), nil
}

func (s *coordinatorService) GetByID(ctx context.Context, id string) (*Coordinator, error) {
	rec, err := s.store.Get(ctx, tableCoordinadores, id)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, ErrCoordinatorNotFound
		}
		return nil, fmt.Errorf("get coordinator %s: %w", id, err)
	}
	return coordinatorFromRecord(rec), nil
}

func coordinatorFromRecord(rec *airtable.Record) *Coordinator {
	return &Coordinator{
		ID:    rec.ID,
		Name:  rec.String("Nombre"),
		Email: rec.String("Email"),
	}
}
