package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/lib/money"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
)

// Messages surfaced to callers, one per operation.
const (
	msgRevenue        = "Failed to fetch revenue data."
	msgLatestInvoices = "Failed to fetch the latest invoices."
	msgCardData       = "Failed to fetch card data."
	msgInvoices       = "Failed to fetch invoices."
	msgInvoicePages   = "Failed to fetch total number of invoices."
	msgInvoice        = "Failed to fetch invoice."
	msgCustomers      = "Failed to fetch all customers."
	msgCustomerTable  = "Failed to fetch customer table."
)

// DashboardService serves the dashboard's eight read operations.
//
// It holds no per-request state and is safe for concurrent use.
type DashboardService struct {
	store     repository.Store
	formatter *money.Formatter
	locale    language.Tag
	delay     Delay
	logger    *zerolog.Logger

	latestLimit   int
	pageSize      int
	slowThreshold time.Duration
}

func NewDashboardService(store repository.Store, cfg *config.Config, logger *zerolog.Logger) (*DashboardService, error) {
	dash := cfg.Dashboard

	formatter, err := money.NewFormatter(dash.Locale, dash.CurrencySymbol)
	if err != nil {
		return nil, fmt.Errorf("currency formatter: %w", err)
	}

	locale, err := language.Parse(formatterLocale(dash.Locale))
	if err != nil {
		return nil, fmt.Errorf("collation locale: %w", err)
	}

	return &DashboardService{
		store:         store,
		formatter:     formatter,
		locale:        locale,
		delay:         DelayFor(dash.RevenueDelay),
		logger:        logger,
		latestLimit:   dash.LatestInvoicesLimit,
		pageSize:      dash.ItemsPerPage,
		slowThreshold: cfg.Observability.Logging.SlowQueryThreshold,
	}, nil
}

func formatterLocale(locale string) string {
	if locale == "" {
		return money.DefaultLocale
	}
	return locale
}

// SetDelay replaces the revenue delay strategy.
func (s *DashboardService) SetDelay(d Delay) {
	s.delay = d
}

// Formatter returns the currency formatter every amount goes through.
func (s *DashboardService) Formatter() *money.Formatter {
	return s.formatter
}

// FetchRevenue returns every revenue row in store order, after the
// configured artificial delay.
func (s *DashboardService) FetchRevenue(ctx context.Context) ([]model.Revenue, error) {
	const op = "FetchRevenue"
	log := s.log(ctx)

	log.Info().Msg("Fetching revenue data...")
	if err := s.delay.Wait(ctx); err != nil {
		return nil, s.fail(ctx, op, errs.KindRevenueFetch, msgRevenue, err)
	}

	start := time.Now()
	revenue, err := s.store.Revenue(ctx)
	if err != nil {
		return nil, s.fail(ctx, op, errs.KindRevenueFetch, msgRevenue, err)
	}
	s.observe(ctx, op, start)

	log.Info().Msgf("Data fetch completed after %s.", s.delay)
	return revenue, nil
}

// FetchLatestInvoices returns the limit most recent invoices. A limit of
// zero or less uses the configured default.
func (s *DashboardService) FetchLatestInvoices(ctx context.Context, limit int) ([]model.InvoiceRow, error) {
	const op = "FetchLatestInvoices"

	if limit <= 0 {
		limit = s.latestLimit
	}

	start := time.Now()
	records, err := s.store.LatestInvoices(ctx, limit)
	if err != nil {
		return nil, s.fail(ctx, op, errs.KindInvoiceFetch, msgLatestInvoices, err)
	}
	s.observe(ctx, op, start)

	return s.invoiceRows(records), nil
}

// FetchCardData returns the dashboard card figures with sums formatted.
func (s *DashboardService) FetchCardData(ctx context.Context) (model.CardData, error) {
	const op = "FetchCardData"

	start := time.Now()
	totals, err := s.store.CardTotals(ctx)
	if err != nil {
		return model.CardData{}, s.fail(ctx, op, errs.KindCardDataFetch, msgCardData, err)
	}
	s.observe(ctx, op, start)

	return model.CardData{
		NumberOfCustomers:    totals.NumberOfCustomers,
		NumberOfInvoices:     totals.NumberOfInvoices,
		TotalPaidInvoices:    s.formatter.Format(totals.TotalPaid),
		TotalPendingInvoices: s.formatter.Format(totals.TotalPending),
	}, nil
}

// FetchFilteredInvoices returns one page of invoices matching query.
//
// Pages are 1-based; page < 1 reads the first page and pageSize <= 0
// uses the configured default. A page past the end is empty, not an error.
func (s *DashboardService) FetchFilteredInvoices(ctx context.Context, query string, page, pageSize int) ([]model.InvoiceRow, error) {
	const op = "FetchFilteredInvoices"

	if page < 1 {
		page = 1
	}
	pageSize = s.resolvePageSize(pageSize)
	if page-1 > math.MaxInt/pageSize {
		// The offset would overflow; no store holds that many rows.
		return []model.InvoiceRow{}, nil
	}
	offset := (page - 1) * pageSize

	start := time.Now()
	records, err := s.store.FilteredInvoices(ctx, query, pageSize, offset)
	if err != nil {
		return nil, s.fail(ctx, op, errs.KindInvoiceFetch, msgInvoices, err)
	}
	s.observe(ctx, op, start)

	return s.invoiceRows(records), nil
}

// FetchInvoicesPages returns how many pages of pageSize the invoices
// matching query fill. No matches means zero pages.
func (s *DashboardService) FetchInvoicesPages(ctx context.Context, query string, pageSize int) (int, error) {
	const op = "FetchInvoicesPages"

	pageSize = s.resolvePageSize(pageSize)

	start := time.Now()
	count, err := s.store.CountFilteredInvoices(ctx, query)
	if err != nil {
		return 0, s.fail(ctx, op, errs.KindInvoicePageCount, msgInvoicePages, err)
	}
	s.observe(ctx, op, start)

	pages := count / pageSize
	if count%pageSize != 0 {
		pages++
	}
	return pages, nil
}

// FetchInvoiceByID returns the edit-form view of one invoice, with the
// amount in major units. ok is false when no invoice has the id,
// including ids that are not UUIDs.
func (s *DashboardService) FetchInvoiceByID(ctx context.Context, id string) (form model.InvoiceForm, ok bool, err error) {
	const op = "FetchInvoiceByID"

	parsed, perr := uuid.Parse(id)
	if perr != nil {
		return model.InvoiceForm{}, false, nil
	}

	start := time.Now()
	inv, err := s.store.InvoiceByID(ctx, parsed.String())
	if errors.Is(err, repository.ErrNotFound) {
		return model.InvoiceForm{}, false, nil
	}
	if err != nil {
		return model.InvoiceForm{}, false, s.fail(ctx, op, errs.KindInvoiceFetch, msgInvoice, err)
	}
	s.observe(ctx, op, start)

	return model.InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     money.ToMajor(inv.Amount),
		Status:     inv.Status,
	}, true, nil
}

// FetchCustomers returns every customer ordered by name under the
// configured locale's collation.
func (s *DashboardService) FetchCustomers(ctx context.Context) ([]model.Customer, error) {
	const op = "FetchCustomers"

	start := time.Now()
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return nil, s.fail(ctx, op, errs.KindCustomerFetch, msgCustomers, err)
	}
	s.observe(ctx, op, start)

	sortByName(s.locale, customers, func(c model.Customer) string { return c.Name })
	return customers, nil
}

// FetchFilteredCustomers returns the customers table: customers whose
// name or email matches query, with invoice counts and formatted totals.
func (s *DashboardService) FetchFilteredCustomers(ctx context.Context, query string) ([]model.CustomerSummary, error) {
	const op = "FetchFilteredCustomers"

	start := time.Now()
	totals, err := s.store.CustomerTotals(ctx, query)
	if err != nil {
		return nil, s.fail(ctx, op, errs.KindCustomerFetch, msgCustomerTable, err)
	}
	s.observe(ctx, op, start)

	sortByName(s.locale, totals, func(c model.CustomerTotals) string { return c.Name })

	rows := make([]model.CustomerSummary, len(totals))
	for i, c := range totals {
		rows[i] = model.CustomerSummary{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			ImageURL:      c.ImageURL,
			TotalInvoices: c.TotalInvoices,
			TotalPending:  s.formatter.Format(c.TotalPending),
			TotalPaid:     s.formatter.Format(c.TotalPaid),
		}
	}
	return rows, nil
}

// Ping reports whether the backing store answers.
func (s *DashboardService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *DashboardService) resolvePageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.pageSize
	}
	return pageSize
}

func (s *DashboardService) invoiceRows(records []model.InvoiceRecord) []model.InvoiceRow {
	rows := make([]model.InvoiceRow, len(records))
	for i, r := range records {
		rows[i] = model.InvoiceRow{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			ImageURL: r.ImageURL,
			Date:     r.Date.Format(model.DateLayout),
			Status:   r.Status,
			Amount:   s.formatter.Format(r.Amount),
		}
	}
	return rows
}

// sortByName orders items by name under locale collation. Ties keep the
// store's order.
func sortByName[T any](locale language.Tag, items []T, name func(T) string) {
	// A Collator carries scratch buffers and must not be shared.
	c := collate.New(locale)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}

// log prefers the request-scoped logger that middleware puts in ctx.
func (s *DashboardService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

// fail logs the store error as a "Database Error" and returns the
// domain error callers see in its place.
func (s *DashboardService) fail(ctx context.Context, op string, kind errs.Kind, message string, cause error) error {
	event := s.log(ctx).Error().
		Err(cause).
		Str("operation", op).
		Str("error_code", kind.Code())

	if errs.IsCanceled(cause) {
		event = event.Bool("canceled", true)
	}

	if sqlErr := sqlerr.Describe(cause); sqlErr != nil {
		event = event.
			Str("sql_code", string(sqlErr.Code)).
			Str("database_code", sqlErr.DatabaseCode).
			Str("table", sqlErr.TableName).
			Str("constraint", sqlErr.ConstraintName)
	}

	event.Msg("Database Error")
	return errs.NewFetchError(kind, message, cause)
}

// observe warns about store calls slower than the configured threshold.
func (s *DashboardService) observe(ctx context.Context, op string, start time.Time) {
	if s.slowThreshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > s.slowThreshold {
		s.log(ctx).Warn().
			Str("operation", op).
			Dur("took", elapsed).
			Dur("threshold", s.slowThreshold).
			Msg("slow store call")
	}
}
