package core

import (
	"context"
	"errors"
	"fmt"

	"portal-coordinadores/internal/airtable"
)

// ErrActivityNotFound indicates the referenced activity does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityService registers and browses field activities.
type ActivityService interface {
	// Register validates the conditional fields and creates the activity
	// owned by the coordinator.
	Register(ctx context.Context, coordinatorID string, a Activity) (*Activity, error)
	// ByCoordinator lists the coordinator's activities, newest first.
	ByCoordinator(ctx context.Context, coordinatorID string) ([]Activity, error)
	// All returns every activity, for the map roll-up.
	All(ctx context.Context) ([]Activity, error)
	// Update rewrites an activity's editable fields after checking
	// ownership and field visibility.
	Update(ctx context.Context, id, coordinatorID string, a Activity) (*Activity, error)
}

type activityService struct {
	store airtable.API
}

// NewActivityService constructs an ActivityService over the store.
func NewActivityService(store airtable.API) ActivityService {
	return &activityService{store: store}
}

func (s *activityService) Register(ctx context.Context, coordinatorID string, a Activity) (*Activity, error) {
	if err := a.ValidateFields(); err != nil {
		return nil, err
	}

	fields := activityFields(a)
	fields["Coordinador"] = []string{coordinatorID}
	rec, err := s.store.Create(ctx, tableActividades, fields)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	created := activityFromRecord(rec)
	return &created, nil
}

func (s *activityService) ByCoordinator(ctx context.Context, coordinatorID string) ([]Activity, error) {
	formula := fmt.Sprintf(
		"FIND('%s', ARRAYJOIN({Coordinador Id}))",
		airtable.EscapeFormulaString(coordinatorID),
	)
	recs, err := s.store.ListAll(ctx, tableActividades, airtable.ListOptions{
		FilterByFormula: formula,
		Sort:            []airtable.SortField{{Field: "Fecha", Direction: "desc"}},
		PageSize:        100,
	})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activitiesFromRecords(recs), nil
}

func (s *activityService) All(ctx context.Context) ([]Activity, error) {
	recs, err := s.store.ListAll(ctx, tableActividades, airtable.ListOptions{PageSize: 100})
	if err != nil {
		return nil, fmt.Errorf("list all activities: %w", err)
	}
	return activitiesFromRecords(recs), nil
}

func (s *activityService) Update(ctx context.Context, id, coordinatorID string, a Activity) (*Activity, error) {
	if err := a.ValidateFields(); err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, tableActividades, id)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	current := activityFromRecord(rec)
	owned := false
	for _, cid := range current.CoordinatorIDs {
		if cid == coordinatorID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrNotOwner
	}

	updated, err := s.store.Update(ctx, tableActividades, id, activityFields(a))
	if err != nil {
		return nil, fmt.Errorf("update activity %s: %w", id, err)
	}
	out := activityFromRecord(updated)
	return &out, nil
}

// activityFields maps the editable attributes to Actividades columns.
// Hidden conditional fields are written as their zero value so a type
// change clears stale data.
func activityFields(a Activity) map[string]any {
	fields := map[string]any{
		"Tipo":        string(a.Type),
		"Fecha":       a.Date,
		"Descripcion": a.Description,
		"Asistentes":  a.Asistentes,
		"Institucion": a.Institucion,
		"Kilos":       a.Kilos,
		"Centro":      a.Centro,
		"Entidad":     a.Entidad,
	}
	if len(a.MunicipalityIDs) > 0 {
		fields["Municipio"] = a.MunicipalityIDs
	}
	return fields
}

func activitiesFromRecords(recs []airtable.Record) []Activity {
	out := make([]Activity, len(recs))
	for i := range recs {
		out[i] = activityFromRecord(&recs[i])
	}
	return out
}

func activityFromRecord(rec *airtable.Record) Activity {
	return Activity{
		ID:              rec.ID,
		Type:            ActivityType(rec.String("Tipo")),
		Date:            rec.String("Fecha"),
		CoordinatorIDs:  rec.Strings("Coordinador"),
		MunicipalityIDs: rec.Strings("Municipio"),
		Description:     rec.String("Descripcion"),
		Asistentes:      rec.Int("Asistentes"),
		Institucion:     rec.String("Institucion"),
		Kilos:           rec.Float("Kilos"),
		Centro:          rec.String("Centro"),
		Entidad:         rec.String("Entidad"),
	}
}
