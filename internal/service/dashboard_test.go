package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Dashboard.RevenueDelay = 0
	return cfg
}

func newService(t *testing.T, store repository.Store) (*DashboardService, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	svc, err := NewDashboardService(store, testConfig(), &logger)
	require.NoError(t, err)
	return svc, &buf
}

func placeholderService(t *testing.T) *DashboardService {
	svc, _ := newService(t, repository.NewMemoryStore(placeholder.Default()))
	return svc
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	require.NoError(t, err)
	return d
}

// aliceAndBob is the two-customer scenario: Alice has one paid 500,
// Bob one pending 300.
func aliceAndBob(t *testing.T) placeholder.Dataset {
	return placeholder.Dataset{
		Customers: []model.Customer{
			{ID: "a", Name: "Alice", Email: "alice@example.com"},
			{ID: "b", Name: "Bob", Email: "bob@example.com"},
		},
		Invoices: []model.Invoice{
			{ID: "i1", CustomerID: "a", Amount: 500, Status: model.InvoiceStatusPaid, Date: mustDate(t, "2024-01-02")},
			{ID: "i2", CustomerID: "b", Amount: 300, Status: model.InvoiceStatusPending, Date: mustDate(t, "2024-01-03")},
		},
	}
}

func TestFetchCardDataAliceAndBob(t *testing.T) {
	svc, _ := newService(t, repository.NewMemoryStore(aliceAndBob(t)))

	cards, err := svc.FetchCardData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.CardData{
		NumberOfCustomers:    2,
		NumberOfInvoices:     2,
		TotalPaidInvoices:    "$5.00",
		TotalPendingInvoices: "$3.00",
	}, cards)
}

func TestFetchFilteredCustomersBob(t *testing.T) {
	svc, _ := newService(t, repository.NewMemoryStore(aliceAndBob(t)))

	rows, err := svc.FetchFilteredCustomers(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].Name)
	assert.Equal(t, 1, rows[0].TotalInvoices)
	assert.Equal(t, "$3.00", rows[0].TotalPending)
	assert.Equal(t, "$0.00", rows[0].TotalPaid)
}

func TestFetchFilteredCustomersIncludesCustomersWithoutInvoices(t *testing.T) {
	data := aliceAndBob(t)
	data.Customers = append(data.Customers, model.Customer{ID: "c", Name: "Carol", Email: "carol@example.com"})
	svc, _ := newService(t, repository.NewMemoryStore(data))

	rows, err := svc.FetchFilteredCustomers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Carol", rows[2].Name)
	assert.Zero(t, rows[2].TotalInvoices)
	assert.Equal(t, "$0.00", rows[2].TotalPending)
	assert.Equal(t, "$0.00", rows[2].TotalPaid)
}

func TestFetchCardDataPaidPlusPendingWithinTotal(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	cards, err := svc.FetchCardData(ctx)
	require.NoError(t, err)

	paid, err := svc.Formatter().Parse(cards.TotalPaidInvoices)
	require.NoError(t, err)
	pending, err := svc.Formatter().Parse(cards.TotalPendingInvoices)
	require.NoError(t, err)

	var total int64
	for _, inv := range placeholder.Default().Invoices {
		total += inv.Amount
	}
	assert.LessOrEqual(t, paid+pending, total)
	assert.Equal(t, 6, cards.NumberOfCustomers)
	assert.Equal(t, 13, cards.NumberOfInvoices)
}

func TestFetchRevenue(t *testing.T) {
	svc, logs := newService(t, repository.NewMemoryStore(placeholder.Default()))

	revenue, err := svc.FetchRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, revenue, 12)
	assert.Equal(t, model.Revenue{Month: "Jan", Revenue: 2000}, revenue[0])
	assert.Equal(t, model.Revenue{Month: "Dec", Revenue: 4800}, revenue[11])

	assert.Contains(t, logs.String(), "Fetching revenue data...")
	assert.Contains(t, logs.String(), "Data fetch completed after 0s.")
}

func TestFetchRevenueWaitsForDelay(t *testing.T) {
	svc := placeholderService(t)
	svc.SetDelay(FixedDelay(20 * time.Millisecond))

	start := time.Now()
	_, err := svc.FetchRevenue(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFetchRevenueDelayCancelled(t *testing.T) {
	svc := placeholderService(t)
	svc.SetDelay(FixedDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.FetchRevenue(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrRevenueFetch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "Failed to fetch revenue data.", err.Error())
}

func TestFetchLatestInvoices(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	rows, err := svc.FetchLatestInvoices(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Michael Novotny", rows[0].Name)
	assert.Equal(t, "$448.00", rows[0].Amount)
	assert.Equal(t, "2023-09-10", rows[0].Date)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Date, rows[i].Date)
	}

	again, err := svc.FetchLatestInvoices(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, rows, again)

	two, err := svc.FetchLatestInvoices(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, rows[:2], two)
}

func TestFetchFilteredInvoicesMatchesEveryField(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty matches all", "", 13},
		{"name is case-insensitive", "EVIL", 2},
		{"email", "@orban.com", 3},
		{"amount text", "15795", 1},
		{"date text", "2022-12", 1},
		{"status", "pending", 5},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.FetchFilteredInvoices(ctx, tt.query, 1, 100)
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
		})
	}
}

func TestFetchFilteredInvoicesPagesReconstructFullSet(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	for _, query := range []string{"", "paid", "a", "2023"} {
		for _, pageSize := range []int{1, 4, 6, 13, 20} {
			full, err := svc.FetchFilteredInvoices(ctx, query, 1, 1000)
			require.NoError(t, err)

			pages, err := svc.FetchInvoicesPages(ctx, query, pageSize)
			require.NoError(t, err)
			assert.Equal(t, (len(full)+pageSize-1)/pageSize, pages, "query %q size %d", query, pageSize)

			var joined []model.InvoiceRow
			for p := 1; p <= pages; p++ {
				rows, err := svc.FetchFilteredInvoices(ctx, query, p, pageSize)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(rows), pageSize)
				joined = append(joined, rows...)
			}
			assert.Equal(t, full, joined, "query %q size %d", query, pageSize)

			past, err := svc.FetchFilteredInvoices(ctx, query, pages+1, pageSize)
			require.NoError(t, err)
			assert.Empty(t, past)
		}
	}
}

func TestFetchFilteredInvoicesDefaults(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	first, err := svc.FetchFilteredInvoices(ctx, "", 1, 6)
	require.NoError(t, err)

	clamped, err := svc.FetchFilteredInvoices(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, first, clamped)
}

func TestFetchFilteredInvoicesHugePageIsEmpty(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	// (page-1)*6 wraps to a small offset if computed naively.
	for _, page := range []int{1537228672809129303, math.MaxInt} {
		rows, err := svc.FetchFilteredInvoices(ctx, "", page, 6)
		require.NoError(t, err)
		assert.Empty(t, rows, page)
	}

	rows, err := svc.FetchFilteredInvoices(ctx, "", math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, rows)

	first, err := svc.FetchFilteredInvoices(ctx, "", 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, first, len(placeholder.Default().Invoices))

	pages, err := svc.FetchInvoicesPages(ctx, "", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestFetchInvoicesPages(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	pages, err := svc.FetchInvoicesPages(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	pages, err = svc.FetchInvoicesPages(ctx, "pending", 6)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)

	pages, err = svc.FetchInvoicesPages(ctx, "no such invoice", 6)
	require.NoError(t, err)
	assert.Zero(t, pages)
}

func TestFetchInvoiceByID(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()
	data := placeholder.Default()

	form, ok, err := svc.FetchInvoiceByID(ctx, placeholder.InvoiceID(0))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, placeholder.InvoiceID(0), form.ID)
	assert.Equal(t, data.Customers[0].ID, form.CustomerID)
	assert.Equal(t, "157.95", form.Amount.String())
	assert.Equal(t, model.InvoiceStatusPending, form.Status)

	upper, ok, err := svc.FetchInvoiceByID(ctx, strings.ToUpper(placeholder.InvoiceID(0)))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, form, upper)
}

func TestFetchInvoiceByIDAbsent(t *testing.T) {
	svc := placeholderService(t)
	ctx := context.Background()

	for _, id := range []string{"", "not-a-uuid", "00000000-0000-0000-0000-000000000000"} {
		_, ok, err := svc.FetchInvoiceByID(ctx, id)
		assert.NoError(t, err, id)
		assert.False(t, ok, id)
	}
}

func TestFetchCustomersCollated(t *testing.T) {
	data := placeholder.Dataset{
		Customers: []model.Customer{
			{ID: "1", Name: "Zoe"},
			{ID: "2", Name: "Émile"},
			{ID: "3", Name: "Eve"},
			{ID: "4", Name: "adam"},
		},
	}
	svc, _ := newService(t, repository.NewMemoryStore(data))

	customers, err := svc.FetchCustomers(context.Background())
	require.NoError(t, err)

	var names []string
	for _, c := range customers {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"adam", "Émile", "Eve", "Zoe"}, names)
}

func TestFetchCustomersPlaceholder(t *testing.T) {
	svc := placeholderService(t)

	customers, err := svc.FetchCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 6)
	assert.Equal(t, "Amy Burns", customers[0].Name)
	assert.Equal(t, "Michael Novotny", customers[5].Name)
}

// failingStore fails every read with err.
type failingStore struct {
	err error
}

func (f failingStore) Revenue(context.Context) ([]model.Revenue, error) { return nil, f.err }
func (f failingStore) LatestInvoices(context.Context, int) ([]model.InvoiceRecord, error) {
	return nil, f.err
}
func (f failingStore) CardTotals(context.Context) (model.CardTotals, error) {
	return model.CardTotals{}, f.err
}
func (f failingStore) FilteredInvoices(context.Context, string, int, int) ([]model.InvoiceRecord, error) {
	return nil, f.err
}
func (f failingStore) CountFilteredInvoices(context.Context, string) (int, error) { return 0, f.err }
func (f failingStore) InvoiceByID(context.Context, string) (model.Invoice, error) {
	return model.Invoice{}, f.err
}
func (f failingStore) Customers(context.Context) ([]model.Customer, error) { return nil, f.err }
func (f failingStore) CustomerTotals(context.Context, string) ([]model.CustomerTotals, error) {
	return nil, f.err
}
func (f failingStore) Ping(context.Context) error { return f.err }

func TestStoreFailuresBecomeFetchErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc, logs := newService(t, failingStore{err: boom})
	ctx := context.Background()
	validID := placeholder.InvoiceID(0)

	tests := []struct {
		name     string
		call     func() error
		sentinel error
		message  string
	}{
		{"revenue", func() error { _, err := svc.FetchRevenue(ctx); return err }, errs.ErrRevenueFetch, "Failed to fetch revenue data."},
		{"latest", func() error { _, err := svc.FetchLatestInvoices(ctx, 5); return err }, errs.ErrInvoiceFetch, "Failed to fetch the latest invoices."},
		{"cards", func() error { _, err := svc.FetchCardData(ctx); return err }, errs.ErrCardDataFetch, "Failed to fetch card data."},
		{"invoices", func() error { _, err := svc.FetchFilteredInvoices(ctx, "", 1, 6); return err }, errs.ErrInvoiceFetch, "Failed to fetch invoices."},
		{"pages", func() error { _, err := svc.FetchInvoicesPages(ctx, "", 6); return err }, errs.ErrInvoicePageCount, "Failed to fetch total number of invoices."},
		{"invoice", func() error { _, _, err := svc.FetchInvoiceByID(ctx, validID); return err }, errs.ErrInvoiceFetch, "Failed to fetch invoice."},
		{"customers", func() error { _, err := svc.FetchCustomers(ctx); return err }, errs.ErrCustomerFetch, "Failed to fetch all customers."},
		{"customer table", func() error { _, err := svc.FetchFilteredCustomers(ctx, ""); return err }, errs.ErrCustomerFetch, "Failed to fetch customer table."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()

			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Error())
			assert.NotErrorIs(t, err, boom, "store error must not leak")

			var fetchErr *errs.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, boom, fetchErr.Cause())

			assert.Contains(t, logs.String(), "Database Error")
			assert.Contains(t, logs.String(), "connection refused")
		})
	}
}

func TestStoreCancellationIsVisible(t *testing.T) {
	svc, _ := newService(t, failingStore{err: context.DeadlineExceeded})

	_, err := svc.FetchCardData(context.Background())
	assert.ErrorIs(t, err, errs.ErrCardDataFetch)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSlowStoreCallIsLogged(t *testing.T) {
	svc, logs := newService(t, repository.NewMemoryStore(placeholder.Default()))
	svc.slowThreshold = time.Nanosecond

	_, err := svc.FetchCustomers(context.Background())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "slow store call")
}

func TestRequestLoggerFromContext(t *testing.T) {
	svc, own := newService(t, failingStore{err: errors.New("down")})

	var reqBuf bytes.Buffer
	reqLogger := zerolog.New(&reqBuf).With().Str("request_id", "r-1").Logger()
	ctx := reqLogger.WithContext(context.Background())

	_, err := svc.FetchCustomers(ctx)
	require.Error(t, err)
	assert.Contains(t, reqBuf.String(), `"request_id":"r-1"`)
	assert.NotContains(t, own.String(), "Database Error")
}
