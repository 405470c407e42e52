package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"portal-coordinadores/internal/airtable"
)

// ErrTerceroNotFound indicates the referenced beneficiary does not exist.
var ErrTerceroNotFound = errors.New("tercero not found")

// MasterService serves the read-only master data the drafting screens need:
// the service catalog, beneficiaries, and municipalities.
type MasterService interface {
	// ActiveCatalogServices returns the purchasable services, active only,
	// ordered by name.
	ActiveCatalogServices(ctx context.Context) ([]CatalogService, error)
	// SearchTerceros matches beneficiaries by name or tax id substring.
	SearchTerceros(ctx context.Context, query string) ([]Tercero, error)
	// GetTercero fetches one beneficiary by record id.
	GetTercero(ctx context.Context, id string) (*Tercero, error)
	// SearchMunicipalities matches municipalities on their mundep label.
	SearchMunicipalities(ctx context.Context, query string) ([]Municipality, error)
	// Municipalities returns the whole MUNICIPIOS table, for the map view.
	Municipalities(ctx context.Context) ([]Municipality, error)
}

type masterService struct {
	store airtable.API
}

// NewMasterService constructs a MasterService over the store.
func NewMasterService(store airtable.API) MasterService {
	return &masterService{store: store}
}

func (s *masterService) ActiveCatalogServices(ctx context.Context) ([]CatalogService, error) {
	recs, err := s.store.ListAll(ctx, tableCatalogo, airtable.ListOptions{
		FilterByFormula: "{Activo} = TRUE()",
		Sort:            []airtable.SortField{{Field: "Nombre", Direction: "asc"}},
		PageSize:        100,
	})
	if err != nil {
		return nil, fmt.Errorf("list catalog services: %w", err)
	}

	services := make([]CatalogService, len(recs))
	for i := range recs {
		services[i] = catalogServiceFromRecord(&recs[i])
	}
	return services, nil
}

func (s *masterService) SearchTerceros(ctx context.Context, query string) ([]Tercero, error) {
	q := airtable.EscapeFormulaString(query)
	formula := fmt.Sprintf(
		"OR(FIND(LOWER('%s'), LOWER({Nombre})), FIND('%s', {NIT}))", q, q,
	)
	recs, err := s.store.ListAll(ctx, tableTerceros, airtable.ListOptions{
		FilterByFormula: formula,
		Sort:            []airtable.SortField{{Field: "Nombre", Direction: "asc"}},
		PageSize:        25,
		MaxRecords:      25,
	})
	if err != nil {
		return nil, fmt.Errorf("search terceros: %w", err)
	}

	terceros := make([]Tercero, len(recs))
	for i := range recs {
		terceros[i] = terceroFromRecord(&recs[i])
	}
	return terceros, nil
}

func (s *masterService) GetTercero(ctx context.Context, id string) (*Tercero, error) {
	rec, err := s.store.Get(ctx, tableTerceros, id)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, ErrTerceroNotFound
		}
		return nil, fmt.Errorf("get tercero %s: %w", id, err)
	}
	t := terceroFromRecord(rec)
	return &t, nil
}

func (s *masterService) SearchMunicipalities(ctx context.Context, query string) ([]Municipality, error) {
	formula := fmt.Sprintf(
		"FIND(LOWER('%s'), LOWER({mundep}))",
		airtable.EscapeFormulaString(query),
	)
	recs, err := s.store.ListAll(ctx, tableMunicipios, airtable.ListOptions{
		FilterByFormula: formula,
		Sort:            []airtable.SortField{{Field: "mundep", Direction: "asc"}},
		PageSize:        25,
		MaxRecords:      25,
	})
	if err != nil {
		return nil, fmt.Errorf("search municipalities: %w", err)
	}
	return municipalitiesFromRecords(recs), nil
}

func (s *masterService) Municipalities(ctx context.Context) ([]Municipality, error) {
	recs, err := s.store.ListAll(ctx, tableMunicipios, airtable.ListOptions{PageSize: 100})
	if err != nil {
		return nil, fmt.Errorf("list municipalities: %w", err)
	}
	return municipalitiesFromRecords(recs), nil
}

func municipalitiesFromRecords(recs []airtable.Record) []Municipality {
	out := make([]Municipality, len(recs))
	for i := range recs {
		out[i] = Municipality{
			ID:         recs[i].ID,
			Name:       recs[i].String("Municipio"),
			Department: recs[i].String("Departamento"),
			MunDep:     recs[i].String("mundep"),
		}
	}
	return out
}

func catalogServiceFromRecord(rec *airtable.Record) CatalogService {
	return CatalogService{
		ID:             rec.ID,
		Name:           rec.String("Nombre"),
		Description:    rec.String("Descripcion"),
		Unit:           rec.String("Unidad"),
		Active:         rec.Bool("Activo"),
		SuggestedPrice: decimal.NewFromFloat(rec.Float("Valor Sugerido")),
	}
}

func terceroFromRecord(rec *airtable.Record) Tercero {
	return Tercero{
		ID:      rec.ID,
		Name:    rec.String("Nombre"),
		TaxID:   rec.String("NIT"),
		Address: rec.String("Direccion"),
		Phone:   rec.String("Telefono"),
		Email:   rec.String("Email"),
	}
}
