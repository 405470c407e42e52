package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"portal-coordinadores/internal/auth"
	"portal-coordinadores/internal/core"
)

// ErrInvalidToken indicates a magic-link token that is unknown, expired,
// or already redeemed.
var ErrInvalidToken = errors.New("invalid or expired login token")

type portalService struct {
	coordinators core.CoordinatorService
	kardex       core.KardexService
	orders       core.OrderService
	master       core.MasterService
	activities   core.ActivityService
	tokens       *auth.TokenStore
	mailer       auth.Mailer
	baseURL      string
	log          *logrus.Logger
}

// NewPortalService wires the core services into the PortalService facade.
// baseURL is the public portal root used when building magic links.
func NewPortalService(
	coordinators core.CoordinatorService,
	kardex core.KardexService,
	orders core.OrderService,
	master core.MasterService,
	activities core.ActivityService,
	tokens *auth.TokenStore,
	mailer auth.Mailer,
	baseURL string,
	log *logrus.Logger,
) PortalService {
	return &portalService{
		coordinators: coordinators,
		kardex:       kardex,
		orders:       orders,
		master:       master,
		activities:   activities,
		tokens:       tokens,
		mailer:       mailer,
		baseURL:      baseURL,
		log:          log,
	}
}

// degraded logs a read failure and reports it as an operational error.
// Callers then hand the UI an empty collection: unavailability is rendered
// as the empty set, never as a crash.
func (s *portalService) degraded(op string, err error) bool {
	if err == nil {
		return false
	}
	s.log.WithFields(logrus.Fields{"module": "portal", "op": op}).
		WithError(err).Error("read degraded to empty result")
	return true
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func (s *portalService) RequestMagicLink(ctx context.Context, email string) error {
	coordinator, err := s.coordinators.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrCoordinatorNotFound) {
			// Unknown emails get the same outward response as known ones.
			s.log.WithFields(logrus.Fields{"module": "auth"}).
				Info("magic link requested for unknown email")
			return nil
		}
		return fmt.Errorf("request magic link: %w", err)
	}

	token := s.tokens.Issue(coordinator.ID, coordinator.Email)
	link := fmt.Sprintf("%s/auth/consume?token=%s", s.baseURL, url.QueryEscape(token))
	if err := s.mailer.SendMagicLink(ctx, coordinator.Email, link); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

func (s *portalService) ConsumeMagicLink(ctx context.Context, token string) (*core.Coordinator, error) {
	coordinatorID, ok := s.tokens.Consume(token)
	if !ok {
		return nil, ErrInvalidToken
	}
	coordinator, err := s.coordinators.GetByID(ctx, coordinatorID)
	if err != nil {
		return nil, fmt.Errorf("consume magic link: %w", err)
	}
	return coordinator, nil
}

func (s *portalService) Me(ctx context.Context, coordinatorID string) (*core.Coordinator, error) {
	return s.coordinators.GetByID(ctx, coordinatorID)
}

// ── Kardex reads ─────────────────────────────────────────────────────────────

func (s *portalService) PendingKardex(ctx context.Context, coordinatorID string) *KardexListResult {
	entries, err := s.kardex.PendingPaymentEntries(ctx, coordinatorID)
	if degraded := s.degraded("pending_kardex", err); degraded {
		return &KardexListResult{Entries: []core.LedgerEntry{}, Degraded: true}
	}
	if entries == nil {
		entries = []core.LedgerEntry{}
	}
	return &KardexListResult{Entries: entries}
}

func (s *portalService) KardexByIDs(ctx context.Context, coordinatorID string, ids []string) *KardexListResult {
	entries, err := s.kardex.EntriesByIDs(ctx, ids)
	if degraded := s.degraded("kardex_by_ids", err); degraded {
		return &KardexListResult{Entries: []core.LedgerEntry{}, Degraded: true}
	}
	// The id set comes from the client; movements belonging to another
	// coordinator are dropped rather than leaked.
	owned := make([]core.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.OwnedBy(coordinatorID) {
			owned = append(owned, e)
		}
	}
	return &KardexListResult{Entries: owned}
}

func (s *portalService) CenterBalances(ctx context.Context) *BalanceResult {
	entries, err := s.kardex.AllEntries(ctx)
	if degraded := s.degraded("center_balances", err); degraded {
		return &BalanceResult{Balances: []core.CenterBalance{}, Degraded: true}
	}
	return &BalanceResult{Balances: core.ComputeCenterBalances(nil, entries)}
}

// ── Order drafting and commit ────────────────────────────────────────────────

func (s *portalService) PreviewDraft(draft core.OrderDraft) *DraftPreviewResult {
	lines := make([]PricedLine, len(draft.Lines))
	for i, l := range draft.Lines {
		lines[i] = PricedLine{Line: l, Subtotal: core.LineSubtotal(l)}
	}
	return &DraftPreviewResult{Lines: lines, Total: draft.Total()}
}

func (s *portalService) CommitOrder(ctx context.Context, req CommitOrderRequest) (*core.CommitResult, error) {
	result, err := s.orders.Commit(ctx, req.Draft, req.CoordinatorID, req.Submit)
	if err != nil {
		return nil, err
	}
	if result.Partial {
		s.log.WithFields(logrus.Fields{
			"module": "portal",
			"order":  result.Order.ID,
		}).Warn("order committed partially; see step ledger")
	}
	return result, nil
}

func (s *portalService) ListOrders(ctx context.Context, coordinatorID string) *OrderListResult {
	orders, err := s.orders.Orders(ctx, coordinatorID)
	if degraded := s.degraded("list_orders", err); degraded {
		return &OrderListResult{Orders: []core.Order{}, Degraded: true}
	}
	if orders == nil {
		orders = []core.Order{}
	}
	return &OrderListResult{Orders: orders}
}

func (s *portalService) GetOrder(ctx context.Context, id, coordinatorID string) (*OrderDetailResult, error) {
	order, items, err := s.orders.Get(ctx, id, coordinatorID)
	if err != nil {
		return nil, err
	}
	return &OrderDetailResult{Order: order, Items: items}, nil
}

func (s *portalService) UpdateOrder(ctx context.Context, id, coordinatorID string, patch core.OrderHeaderPatch) (*core.Order, error) {
	return s.orders.UpdateHeader(ctx, id, coordinatorID, patch)
}

// ── Master data ──────────────────────────────────────────────────────────────

func (s *portalService) Catalog(ctx context.Context) *CatalogResult {
	services, err := s.master.ActiveCatalogServices(ctx)
	if degraded := s.degraded("catalog", err); degraded {
		return &CatalogResult{Services: []core.CatalogService{}, Degraded: true}
	}
	return &CatalogResult{Services: services}
}

func (s *portalService) SearchTerceros(ctx context.Context, query string) *TerceroListResult {
	terceros, err := s.master.SearchTerceros(ctx, query)
	if degraded := s.degraded("search_terceros", err); degraded {
		return &TerceroListResult{Terceros: []core.Tercero{}, Degraded: true}
	}
	return &TerceroListResult{Terceros: terceros}
}

func (s *portalService) SearchMunicipalities(ctx context.Context, query string) *MunicipalityListResult {
	municipalities, err := s.master.SearchMunicipalities(ctx, query)
	if degraded := s.degraded("search_municipalities", err); degraded {
		return &MunicipalityListResult{Municipalities: []core.Municipality{}, Degraded: true}
	}
	return &MunicipalityListResult{Municipalities: municipalities}
}

// ── Activities ───────────────────────────────────────────────────────────────

func (s *portalService) RegisterActivity(ctx context.Context, coordinatorID string, a core.Activity) (*core.Activity, error) {
	return s.activities.Register(ctx, coordinatorID, a)
}

func (s *portalService) ListActivities(ctx context.Context, coordinatorID string) *ActivityListResult {
	activities, err := s.activities.ByCoordinator(ctx, coordinatorID)
	if degraded := s.degraded("list_activities", err); degraded {
		return &ActivityListResult{Activities: []core.Activity{}, Degraded: true}
	}
	if activities == nil {
		activities = []core.Activity{}
	}
	return &ActivityListResult{Activities: activities}
}

func (s *portalService) UpdateActivity(ctx context.Context, id, coordinatorID string, a core.Activity) (*core.Activity, error) {
	return s.activities.Update(ctx, id, coordinatorID, a)
}

// ── Map ──────────────────────────────────────────────────────────────────────

func (s *portalService) MunicipalityMap(ctx context.Context) *MapResult {
	municipalities, err := s.master.Municipalities(ctx)
	if degraded := s.degraded("municipality_map", err); degraded {
		return &MapResult{Stats: []core.MunicipalityStat{}, Degraded: true}
	}
	activities, err := s.activities.All(ctx)
	if degraded := s.degraded("municipality_map", err); degraded {
		return &MapResult{Stats: []core.MunicipalityStat{}, Degraded: true}
	}
	entries, err := s.kardex.AllEntries(ctx)
	if degraded := s.degraded("municipality_map", err); degraded {
		return &MapResult{Stats: []core.MunicipalityStat{}, Degraded: true}
	}
	return &MapResult{Stats: core.ComputeMunicipalityStats(municipalities, activities, entries)}
}
