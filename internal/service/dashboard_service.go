package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/metrics"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ViewState is the lifecycle state of a dashboard view
type ViewState string

const (
	ViewStateInactive ViewState = "inactive"
	ViewStateActive   ViewState = "active"
)

// RandomFunc returns a uniformly distributed value in [0, 1)
type RandomFunc func() float64

// Exchange rate refresh notification
const (
	exchangeRateSummary = "Actualizado"
	exchangeRateDetail  = "Tipo de cambio actualizado"
)

// DashboardConfig holds the settings every dashboard view is created with
type DashboardConfig struct {
	BaseRate   decimal.Decimal
	ChartTheme domain.ChartTheme
}

// DashboardView holds one subject's daily register snapshot while the dashboard is open.
// It is safe for concurrent use.
type DashboardView struct {
	subject   string
	source    domain.SnapshotSource
	accounts  *AccountService
	notifier  domain.Notifier
	cfg       DashboardConfig
	random    RandomFunc
	metrics   *metrics.Metrics
	sanitizer *bluemonday.Policy

	mu           sync.RWMutex
	state        ViewState
	activating   bool
	activatedAt  time.Time
	snapshot     *domain.MetricsSnapshot
	chart        *domain.ChartDescriptor
	invoices     []domain.InvoiceRecord
	account      *domain.Account
	subscription *Subscription
}

// NewDashboardView creates an inactive view for a subject
func NewDashboardView(
	subject string,
	source domain.SnapshotSource,
	accounts *AccountService,
	notifier domain.Notifier,
	cfg DashboardConfig,
	random RandomFunc,
	m *metrics.Metrics,
) *DashboardView {
	if random == nil {
		random = rand.Float64
	}
	if cfg.BaseRate.IsZero() {
		cfg.BaseRate = domain.DefaultExchangeRate
	}
	return &DashboardView{
		subject:   subject,
		source:    source,
		accounts:  accounts,
		notifier:  notifier,
		cfg:       cfg,
		random:    random,
		metrics:   m,
		sanitizer: bluemonday.StrictPolicy(),
		state:     ViewStateInactive,
	}
}

// Activate moves the view from Inactive to Active: it subscribes to the subject's
// authentication state and populates the snapshot, chart and invoice list.
// On failure the view stays Inactive and the subscription is released.
func (v *DashboardView) Activate(ctx context.Context) error {
	v.mu.Lock()
	if v.state == ViewStateActive || v.activating {
		v.mu.Unlock()
		return domain.ErrViewActive
	}
	v.activating = true
	v.mu.Unlock()

	activated := false
	defer func() {
		if !activated {
			v.mu.Lock()
			v.activating = false
			v.account = nil
			v.mu.Unlock()
		}
	}()

	sub, err := v.accounts.Subscribe(v.subject, v.setAccount)
	if err != nil {
		return err
	}
	defer func() {
		if !activated {
			sub.Close()
		}
	}()

	snapshot, err := v.source.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	invoices, err := v.source.LoadInvoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}
	sales, err := v.source.LoadHourlySales(ctx)
	if err != nil {
		return fmt.Errorf("failed to load hourly sales: %w", err)
	}

	chart := domain.NewSalesChart(sales, v.cfg.ChartTheme)
	if err := chart.Validate(); err != nil {
		return err
	}

	for i := range invoices {
		invoices[i].Client = v.sanitizer.Sanitize(invoices[i].Client)
	}

	v.mu.Lock()
	v.snapshot = snapshot
	v.chart = chart
	v.invoices = invoices
	v.subscription = sub
	v.state = ViewStateActive
	v.activating = false
	v.activatedAt = time.Now()
	v.mu.Unlock()
	activated = true

	v.metrics.ViewActivated()
	log.Info().
		Str("subject", v.subject).
		Int("invoice_count", len(invoices)).
		Str("balance_difference", snapshot.BalanceDifference().StringFixed(2)).
		Msg("Dashboard view activated")

	return nil
}

// Deactivate moves the view to Inactive and releases the subscription.
// Safe to call multiple times; the account never changes after it returns.
func (v *DashboardView) Deactivate() {
	v.mu.Lock()
	if v.state != ViewStateActive {
		v.mu.Unlock()
		return
	}
	sub := v.subscription
	v.subscription = nil
	v.state = ViewStateInactive
	v.mu.Unlock()

	// Close outside the lock: an in-flight delivery may be waiting on v.mu
	sub.Close()

	v.metrics.ViewDeactivated()
	log.Info().Str("subject", v.subject).Msg("Dashboard view deactivated")
}

func (v *DashboardView) setAccount(account *domain.Account) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.account = account
}

// RefreshExchangeRate replaces the exchange rate with baseRate ± a uniform offset in [0, 1)
// and notifies the subject's display layer.
func (v *DashboardView) RefreshExchangeRate() (decimal.Decimal, error) {
	v.mu.Lock()
	if v.state != ViewStateActive {
		v.mu.Unlock()
		return decimal.Zero, domain.ErrViewInactive
	}
	offset := decimal.NewFromFloat(v.random()*2 - 1)
	rate := v.cfg.BaseRate.Add(offset).Round(4)
	v.snapshot.ExchangeRate = rate
	v.mu.Unlock()

	if v.notifier != nil {
		v.notifier.Notify(v.subject, domain.Message{
			Severity: domain.SeveritySuccess,
			Summary:  exchangeRateSummary,
			Detail:   exchangeRateDetail,
			Life:     domain.DefaultMessageLife,
		})
	}

	rateFloat, _ := rate.Float64()
	v.metrics.ExchangeRateRefreshed(rateFloat)
	log.Debug().Str("subject", v.subject).Str("exchange_rate", rate.String()).Msg("Exchange rate refreshed")

	return rate, nil
}

// ClassifyInvoiceStatus returns the tag severity for an invoice status
func (v *DashboardView) ClassifyInvoiceStatus(status domain.InvoiceStatus) domain.Severity {
	return domain.ClassifyInvoiceStatus(status)
}

// ClassifyPaymentMethod returns the tag severity for a payment method
func (v *DashboardView) ClassifyPaymentMethod(method domain.PaymentMethod) domain.Severity {
	return domain.ClassifyPaymentMethod(method)
}

// Subject returns the identity the view belongs to
func (v *DashboardView) Subject() string {
	return v.subject
}

// State returns the view's lifecycle state
func (v *DashboardView) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// ActivatedAt returns when the view last became active
func (v *DashboardView) ActivatedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.activatedAt
}

// Snapshot returns a copy of the metrics snapshot, or nil before the first activation
func (v *DashboardView) Snapshot() *domain.MetricsSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.snapshot == nil {
		return nil
	}
	s := *v.snapshot
	return &s
}

// BalanceDifference returns the register difference derived from the current snapshot
func (v *DashboardView) BalanceDifference() decimal.Decimal {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.snapshot == nil {
		return decimal.Zero
	}
	return v.snapshot.BalanceDifference()
}

// Invoices returns a copy of today's invoices in display order
func (v *DashboardView) Invoices() []domain.InvoiceRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.InvoiceRecord(nil), v.invoices...)
}

// Chart returns the sales chart. Callers must treat it as read-only.
func (v *DashboardView) Chart() *domain.ChartDescriptor {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.chart
}

// Account returns the latest identity received on the subscription, or nil
func (v *DashboardView) Account() *domain.Account {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.account.Clone()
}

// DashboardService keeps one dashboard view per subject
type DashboardService struct {
	source   domain.SnapshotSource
	accounts *AccountService
	notifier domain.Notifier
	cfg      DashboardConfig
	random   RandomFunc
	metrics  *metrics.Metrics

	views map[string]*DashboardView
	// activating holds a channel per subject closed once its in-flight Activate returns
	activating map[string]chan struct{}
	mu         sync.Mutex
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	source domain.SnapshotSource,
	accounts *AccountService,
	notifier domain.Notifier,
	cfg DashboardConfig,
	m *metrics.Metrics,
) *DashboardService {
	return &DashboardService{
		source:   source,
		accounts: accounts,
		notifier: notifier,
		cfg:      cfg,
		metrics:  m,
		views:      make(map[string]*DashboardView),
		activating: make(map[string]chan struct{}),
	}
}

// WithRandom overrides the random source of views created afterwards
func (s *DashboardService) WithRandom(random RandomFunc) *DashboardService {
	s.random = random
	return s
}

// Open returns the subject's view, creating and activating it when needed.
// If the view was already open it is returned together with domain.ErrViewActive.
// A concurrent Open waits for an in-flight activation and reports its outcome.
func (s *DashboardService) Open(ctx context.Context, subject string) (*DashboardView, error) {
	if subject == "" {
		return nil, domain.ErrSubjectRequired
	}

	s.mu.Lock()
	for {
		done, ok := s.activating[subject]
		if !ok {
			break
		}
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.mu.Lock()
	}
	if view, ok := s.views[subject]; ok {
		s.mu.Unlock()
		return view, domain.ErrViewActive
	}
	view := NewDashboardView(subject, s.source, s.accounts, s.notifier, s.cfg, s.random, s.metrics)
	done := make(chan struct{})
	s.views[subject] = view
	s.activating[subject] = done
	s.mu.Unlock()

	err := view.Activate(ctx)

	s.mu.Lock()
	delete(s.activating, subject)
	if err != nil && s.views[subject] == view {
		delete(s.views, subject)
	}
	close(done)
	s.mu.Unlock()

	if err != nil {
		s.metrics.SourceError("activate")
		return nil, err
	}

	return view, nil
}

// View returns the subject's active view
func (s *DashboardService) View(subject string) (*DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[subject]
	if !ok || view.State() != ViewStateActive {
		return nil, domain.ErrViewNotFound
	}
	return view, nil
}

// Close deactivates and drops the subject's view.
// It waits for an in-flight activation of that view to return first.
func (s *DashboardService) Close(subject string) error {
	s.mu.Lock()
	for {
		done, ok := s.activating[subject]
		if !ok {
			break
		}
		s.mu.Unlock()
		<-done
		s.mu.Lock()
	}
	view, ok := s.views[subject]
	if ok {
		delete(s.views, subject)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrViewNotFound
	}
	view.Deactivate()
	return nil
}

// ActiveViews returns the number of open views
func (s *DashboardService) ActiveViews() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Shutdown deactivates every open view
func (s *DashboardService) Shutdown() {
	s.mu.Lock()
	views := make([]*DashboardView, 0, len(s.views))
	for subject, view := range s.views {
		views = append(views, view)
		delete(s.views, subject)
	}
	s.mu.Unlock()

	for _, view := range views {
		view.Deactivate()
	}
	log.Info().Int("view_count", len(views)).Msg("Dashboard views released")
}
