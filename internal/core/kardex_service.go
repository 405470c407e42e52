package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portal-coordinadores/internal/airtable"
)

// ErrStateConflict indicates a Kardex movement's payment state changed
// between read and write, so the transition was not applied.
var ErrStateConflict = errors.New("kardex: payment state changed since read")

// KardexService queries and transitions Kardex movements. Reads return the
// error to the caller; the degrade-to-empty policy for the UI lives one
// layer up so tests can tell "legitimately empty" from "fetch failed".
type KardexService interface {
	// PendingPaymentEntries returns the caller's movements in state
	// Por Pagar, newest first.
	PendingPaymentEntries(ctx context.Context, coordinatorID string) ([]LedgerEntry, error)
	// AllEntries returns the full ledger, following the page cursor to the
	// end. Reporting only.
	AllEntries(ctx context.Context) ([]LedgerEntry, error)
	// EntriesByIDs batch-fetches movements by record id. An empty id set
	// returns an empty slice without a remote call.
	EntriesByIDs(ctx context.Context, ids []string) ([]LedgerEntry, error)
	// Entry fetches one movement by id.
	Entry(ctx context.Context, id string) (*LedgerEntry, error)
	// MarkInOrder transitions one movement Por Pagar → En Orden. The
	// current state is re-read first: ErrNotOwner is returned when the
	// movement does not belong to coordinatorID, ErrStateConflict when it
	// is no longer Por Pagar. Both checks precede the write.
	MarkInOrder(ctx context.Context, id, coordinatorID string) error
}

type kardexService struct {
	store airtable.API
}

// NewKardexService constructs a KardexService over the store.
func NewKardexService(store airtable.API) KardexService {
	return &kardexService{store: store}
}

func (s *kardexService) PendingPaymentEntries(ctx context.Context, coordinatorID string) ([]LedgerEntry, error) {
	// {Coordinador Id} is a lookup exposing the linked record ids, which
	// plain linked fields do not render in formulas.
	formula := fmt.Sprintf(
		"AND({Estado de Pago} = '%s', FIND('%s', ARRAYJOIN({Coordinador Id})))",
		PaymentPending, airtable.EscapeFormulaString(coordinatorID),
	)
	recs, err := s.store.ListAll(ctx, tableKardex, airtable.ListOptions{
		FilterByFormula: formula,
		Sort:            []airtable.SortField{{Field: "Fecha", Direction: "desc"}},
		PageSize:        100,
	})
	if err != nil {
		return nil, fmt.Errorf("list pending kardex: %w", err)
	}
	return ledgerEntriesFromRecords(recs), nil
}

func (s *kardexService) AllEntries(ctx context.Context) ([]LedgerEntry, error) {
	recs, err := s.store.ListAll(ctx, tableKardex, airtable.ListOptions{
		Sort:     []airtable.SortField{{Field: "Fecha", Direction: "desc"}},
		PageSize: 100,
	})
	if err != nil {
		return nil, fmt.Errorf("list kardex: %w", err)
	}
	return ledgerEntriesFromRecords(recs), nil
}

func (s *kardexService) EntriesByIDs(ctx context.Context, ids []string) ([]LedgerEntry, error) {
	if len(ids) == 0 {
		return []LedgerEntry{}, nil
	}

	clauses := make([]string, len(ids))
	for i, id := range ids {
		clauses[i] = fmt.Sprintf("RECORD_ID() = '%s'", airtable.EscapeFormulaString(id))
	}
	recs, err := s.store.ListAll(ctx, tableKardex, airtable.ListOptions{
		FilterByFormula: "OR(" + strings.Join(clauses, ", ") + ")",
		PageSize:        100,
	})
	if err != nil {
		return nil, fmt.Errorf("list kardex by ids: %w", err)
	}
	return ledgerEntriesFromRecords(recs), nil
}

func (s *kardexService) Entry(ctx context.Context, id string) (*LedgerEntry, error) {
	rec, err := s.store.Get(ctx, tableKardex, id)
	if err != nil {
		return nil, fmt.Errorf("get kardex %s: %w", id, err)
	}
	entry := ledgerEntryFromRecord(rec)
	return &entry, nil
}

func (s *kardexService) MarkInOrder(ctx context.Context, id, coordinatorID string) error {
	current, err := s.Entry(ctx, id)
	if err != nil {
		return err
	}
	if !current.OwnedBy(coordinatorID) {
		return fmt.Errorf("kardex %s: %w", id, ErrNotOwner)
	}
	if current.State != PaymentPending {
		return fmt.Errorf("kardex %s is %q: %w", id, current.State, ErrStateConflict)
	}
	if _, err := s.store.Update(ctx, tableKardex, id, map[string]any{
		"Estado de Pago": string(PaymentInOrder),
	}); err != nil {
		return fmt.Errorf("mark kardex %s in order: %w", id, err)
	}
	return nil
}

func ledgerEntriesFromRecords(recs []airtable.Record) []LedgerEntry {
	entries := make([]LedgerEntry, len(recs))
	for i := range recs {
		entries[i] = ledgerEntryFromRecord(&recs[i])
	}
	return entries
}

func ledgerEntryFromRecord(rec *airtable.Record) LedgerEntry {
	return LedgerEntry{
		ID:              rec.ID,
		Number:          rec.Int("Numero"),
		Date:            rec.String("Fecha"),
		Kind:            MovementKind(rec.String("Tipo Movimiento")),
		CoordinatorIDs:  rec.Strings("Coordinador"),
		MunicipalityIDs: rec.Strings("Municipio Origen"),
		Center:          rec.String("Centro de Acopio"),
		Materials: MaterialWeights{
			Reciclaje:           rec.Float("Reciclaje"),
			Incineracion:        rec.Float("Incineracion"),
			PlasticoContaminado: rec.Float("Plastico Contaminado"),
			Flexibles:           rec.Float("Flexibles"),
			Carpas:              rec.Float("Carpas"),
			Carton:              rec.Float("Carton"),
			Metal:               rec.Float("Metal"),
		},
		Total:       rec.Float("Total"),
		State:       PaymentState(rec.String("Estado de Pago")),
		Description: rec.String("Descripcion"),
	}
}
