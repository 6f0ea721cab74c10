// Package repository handles all interactions with the backing store.
//
// Store is the capability every backend offers the service layer:
// query-by-filter with paging, query-by-id and group aggregation over the
// invoices and customers tables. Three implementations live here:
//
//   - MemoryStore: the placeholder fixture, joined and filtered in Go
//   - SQLStore: one portable query set run on Postgres (pgx) or SQLite
//   - CachedStore: a Redis read-through decorator for whole-table reads
//
// Stores return raw records with amounts in minor units. Formatting,
// locale-aware sorting and error translation belong to the service layer.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// ErrNotFound is returned by InvoiceByID when no invoice has the id.
var ErrNotFound = errors.New("not found")

// Store is the read contract the dashboard needs from a backend.
//
// Ordering contract:
//   - Revenue: store order (month order of insertion).
//   - LatestInvoices / FilteredInvoices: date descending, then id ascending,
//     so equal dates page identically on every call.
//   - Customers / CustomerTotals: store order; the caller applies locale
//     collation on top.
//
// Queries match case-insensitively on substrings; an empty query matches
// every row.
type Store interface {
	Revenue(ctx context.Context) ([]model.Revenue, error)
	LatestInvoices(ctx context.Context, limit int) ([]model.InvoiceRecord, error)

	// CardTotals reads all four figures from one snapshot.
	CardTotals(ctx context.Context) (model.CardTotals, error)

	// FilteredInvoices matches name, email, amount text, date text and status.
	FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]model.InvoiceRecord, error)
	CountFilteredInvoices(ctx context.Context, query string) (int, error)

	InvoiceByID(ctx context.Context, id string) (model.Invoice, error)
	Customers(ctx context.Context) ([]model.Customer, error)

	// CustomerTotals left-joins customers matching name or email with
	// their invoices; customers with no invoices come back with zeros.
	CustomerTotals(ctx context.Context, query string) ([]model.CustomerTotals, error)

	Ping(ctx context.Context) error
}
