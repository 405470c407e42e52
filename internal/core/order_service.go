package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"portal-coordinadores/internal/airtable"
)

// ErrOrderNotFound indicates the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderNotEditable indicates the order has left Borrador and can no
// longer be changed by a coordinator.
var ErrOrderNotEditable = errors.New("order is no longer editable")

// ErrNotOwner indicates the caller's coordinator id is not among the
// record's owners. Checked here, before any mutation, not at the store.
var ErrNotOwner = errors.New("record does not belong to this coordinator")

// CommitStep is one sub-operation of a commit and its outcome. The step
// ledger lets callers detect a partially populated order instead of
// receiving a half-built aggregate silently.
type CommitStep struct {
	Op    string `json:"op"`     // create_order | create_item | mark_in_order
	Ref   string `json:"ref"`    // line label, item id or kardex id
	Error string `json:"error,omitempty"`
}

// CommitResult is the outcome of CommitOrder: the created header, the step
// ledger, and whether any sub-step failed.
type CommitResult struct {
	Order   *Order       `json:"order"`
	Steps   []CommitStep `json:"steps"`
	Partial bool         `json:"partial"`
}

// OrderHeaderPatch carries the fields a coordinator may change while an
// order is still Borrador.
type OrderHeaderPatch struct {
	PickDate  *string
	TerceroID *string
	Notes     *string
	Submit    bool // Borrador → Enviada
}

// OrderService persists service orders against the store. The commit is an
// ordered sequence of independent remote writes; there is no transaction.
type OrderService interface {
	// Commit creates the order header, then one item per draft line, then
	// transitions each ledger-sourced movement to En Orden. A header
	// failure aborts the whole commit. Item and transition failures are
	// logged, recorded on the step ledger, and skipped — the remaining
	// sub-steps still run. Committing the same draft twice creates two
	// orders; there is no deduplication.
	Commit(ctx context.Context, draft OrderDraft, coordinatorID string, submit bool) (*CommitResult, error)
	// Orders lists the coordinator's orders, newest first.
	Orders(ctx context.Context, coordinatorID string) ([]Order, error)
	// Get returns one order with its items after checking ownership.
	Get(ctx context.Context, id, coordinatorID string) (*Order, []OrderItem, error)
	// UpdateHeader patches an order still in Borrador, after checking
	// ownership.
	UpdateHeader(ctx context.Context, id, coordinatorID string, patch OrderHeaderPatch) (*Order, error)
}

type orderService struct {
	store  airtable.API
	kardex KardexService
	log    *logrus.Logger
}

// NewOrderService constructs an OrderService over the store.
func NewOrderService(store airtable.API, kardex KardexService, log *logrus.Logger) OrderService {
	return &orderService{store: store, kardex: kardex, log: log}
}

func (s *orderService) Commit(ctx context.Context, draft OrderDraft, coordinatorID string, submit bool) (*CommitResult, error) {
	if err := draft.ValidateForCommit(); err != nil {
		return nil, err
	}

	state := OrderBorrador
	if submit {
		state = OrderEnviada
	}

	headerFields := map[string]any{
		"Coordinador":    []string{coordinatorID},
		"Tercero":        []string{draft.TerceroID},
		"Fecha Recogida": draft.PickDate,
		"Estado":         string(state),
	}
	if draft.Notes != "" {
		headerFields["Notas"] = draft.Notes
	}

	rec, err := s.store.Create(ctx, tableOrdenes, headerFields)
	if err != nil {
		return nil, fmt.Errorf("create order header: %w", err)
	}
	order := orderFromRecord(rec)

	result := &CommitResult{
		Order: &order,
		Steps: []CommitStep{{Op: "create_order", Ref: rec.ID}},
	}

	for _, line := range draft.Lines {
		step := CommitStep{Op: "create_item", Ref: line.Label}
		if _, err := s.store.Create(ctx, tableItemsOrden, itemFields(rec.ID, line)); err != nil {
			step.Error = err.Error()
			result.Partial = true
			s.log.WithFields(logrus.Fields{
				"module": "orders",
				"order":  rec.ID,
				"line":   line.ID,
			}).WithError(err).Error("order item creation failed, continuing")
		}
		result.Steps = append(result.Steps, step)
	}

	for _, line := range draft.Lines {
		if line.Source != SourceLedger {
			continue
		}
		step := CommitStep{Op: "mark_in_order", Ref: line.RefID}
		if err := s.kardex.MarkInOrder(ctx, line.RefID, coordinatorID); err != nil {
			step.Error = err.Error()
			result.Partial = true
			s.log.WithFields(logrus.Fields{
				"module": "orders",
				"order":  rec.ID,
				"kardex": line.RefID,
			}).WithError(err).Error("kardex state transition failed, continuing")
		}
		result.Steps = append(result.Steps, step)
	}

	return result, nil
}

// itemFields maps a draft line to ItemsOrden fields. The item subtotal is a
// store-side formula, so it is never sent.
func itemFields(orderID string, line OrderLineDraft) map[string]any {
	fields := map[string]any{
		"Orden":          []string{orderID},
		"Tipo Cobro":     string(line.Basis),
		"Cantidad":       line.Quantity.InexactFloat64(),
		"Valor Unitario": line.UnitPrice.InexactFloat64(),
	}
	if line.Source == SourceLedger {
		fields["Tipo Item"] = string(ItemWithLedger)
		fields["Kardex"] = []string{line.RefID}
	} else {
		fields["Tipo Item"] = string(ItemWithoutLedger)
		fields["Servicio"] = []string{line.RefID}
	}
	return fields
}

func (s *orderService) Orders(ctx context.Context, coordinatorID string) ([]Order, error) {
	formula := fmt.Sprintf(
		"FIND('%s', ARRAYJOIN({Coordinador Id}))",
		airtable.EscapeFormulaString(coordinatorID),
	)
	recs, err := s.store.ListAll(ctx, tableOrdenes, airtable.ListOptions{
		FilterByFormula: formula,
		Sort:            []airtable.SortField{{Field: "Fecha Recogida", Direction: "desc"}},
		PageSize:        100,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]Order, len(recs))
	for i := range recs {
		orders[i] = orderFromRecord(&recs[i])
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, id, coordinatorID string) (*Order, []OrderItem, error) {
	rec, err := s.store.Get(ctx, tableOrdenes, id)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("get order %s: %w", id, err)
	}
	order := orderFromRecord(rec)
	if !order.OwnedBy(coordinatorID) {
		return nil, nil, ErrNotOwner
	}

	items, err := s.items(ctx, order.ItemIDs)
	if err != nil {
		return nil, nil, err
	}
	return &order, items, nil
}

func (s *orderService) UpdateHeader(ctx context.Context, id, coordinatorID string, patch OrderHeaderPatch) (*Order, error) {
	rec, err := s.store.Get(ctx, tableOrdenes, id)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	current := orderFromRecord(rec)
	if !current.OwnedBy(coordinatorID) {
		return nil, ErrNotOwner
	}
	if current.State != OrderBorrador {
		return nil, fmt.Errorf("order %s is %q: %w", id, current.State, ErrOrderNotEditable)
	}

	fields := map[string]any{}
	if patch.PickDate != nil {
		fields["Fecha Recogida"] = *patch.PickDate
	}
	if patch.TerceroID != nil {
		fields["Tercero"] = []string{*patch.TerceroID}
	}
	if patch.Notes != nil {
		fields["Notas"] = *patch.Notes
	}
	if patch.Submit {
		fields["Estado"] = string(OrderEnviada)
	}
	if len(fields) == 0 {
		return &current, nil
	}

	updated, err := s.store.Update(ctx, tableOrdenes, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	order := orderFromRecord(updated)
	return &order, nil
}

func (s *orderService) items(ctx context.Context, ids []string) ([]OrderItem, error) {
	if len(ids) == 0 {
		return []OrderItem{}, nil
	}
	clauses := make([]string, len(ids))
	for i, id := range ids {
		clauses[i] = fmt.Sprintf("RECORD_ID() = '%s'", airtable.EscapeFormulaString(id))
	}
	recs, err := s.store.ListAll(ctx, tableItemsOrden, airtable.ListOptions{
		FilterByFormula: "OR(" + strings.Join(clauses, ", ") + ")",
		PageSize:        100,
	})
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	items := make([]OrderItem, len(recs))
	for i := range recs {
		items[i] = itemFromRecord(&recs[i])
	}
	return items, nil
}

func orderFromRecord(rec *airtable.Record) Order {
	return Order{
		ID:             rec.ID,
		Number:         rec.Int("Numero"),
		CoordinatorIDs: rec.Strings("Coordinador"),
		TerceroIDs:     rec.Strings("Tercero"),
		PickDate:       rec.String("Fecha Recogida"),
		State:          OrderState(rec.String("Estado")),
		Notes:          rec.String("Notas"),
		ItemIDs:        rec.Strings("Items"),
		Total:          decimal.NewFromFloat(rec.Float("Total")),
		CreatedAt:      rec.CreatedTime,
	}
}

func itemFromRecord(rec *airtable.Record) OrderItem {
	return OrderItem{
		ID:        rec.ID,
		OrderIDs:  rec.Strings("Orden"),
		Kind:      ItemKind(rec.String("Tipo Item")),
		KardexIDs: rec.Strings("Kardex"),
		ServiceID: rec.FirstString("Servicio"),
		Basis:     ChargeBasis(rec.String("Tipo Cobro")),
		Quantity:  decimal.NewFromFloat(rec.Float("Cantidad")),
		UnitPrice: decimal.NewFromFloat(rec.Float("Valor Unitario")),
		Subtotal:  decimal.NewFromFloat(rec.Float("Subtotal")),
	}
}
