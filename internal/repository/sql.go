package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/invoice-dashboard/internal/database"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

var _ Store = (*SQLStore)(nil)

// SQLStore runs the dashboard queries against a database/sql handle.
//
// The same SQL serves Postgres (through pgx's stdlib adapter) and SQLite;
// only the placeholder style differs, and Dialect.Rebind handles that.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLStore(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *SQLStore) Revenue(ctx context.Context) ([]model.Revenue, error) {
	rows, err := s.query(ctx, queryRevenue)
	if err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	var out []model.Revenue
	for rows.Next() {
		var r model.Revenue
		if err := rows.Scan(&r.Month, &r.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) LatestInvoices(ctx context.Context, limit int) ([]model.InvoiceRecord, error) {
	rows, err := s.query(ctx, queryLatestInvoices, limit)
	if err != nil {
		return nil, fmt.Errorf("query latest invoices: %w", err)
	}
	return scanInvoiceRecords(rows)
}

func (s *SQLStore) CardTotals(ctx context.Context) (model.CardTotals, error) {
	var t model.CardTotals
	err := s.queryRow(ctx, queryCardTotals).Scan(
		&t.NumberOfCustomers,
		&t.NumberOfInvoices,
		&t.TotalPaid,
		&t.TotalPending,
	)
	if err != nil {
		return model.CardTotals{}, fmt.Errorf("query card totals: %w", err)
	}
	return t, nil
}

func (s *SQLStore) FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]model.InvoiceRecord, error) {
	args := append(repeat(likePattern(normalizeQuery(query)), invoiceFilterArgs), limit, offset)

	rows, err := s.query(ctx, queryFilteredInvoices, args...)
	if err != nil {
		return nil, fmt.Errorf("query filtered invoices: %w", err)
	}
	return scanInvoiceRecords(rows)
}

func (s *SQLStore) CountFilteredInvoices(ctx context.Context, query string) (int, error) {
	args := repeat(likePattern(normalizeQuery(query)), invoiceFilterArgs)

	var n int
	if err := s.queryRow(ctx, queryCountFilteredInvoices, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count filtered invoices: %w", err)
	}
	return n, nil
}

// InvoiceByID returns ErrNotFound for ids that are not UUIDs as well as
// for ids with no row, so a malformed id never reaches the database.
func (s *SQLStore) InvoiceByID(ctx context.Context, id string) (model.Invoice, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.Invoice{}, ErrNotFound
	}

	var (
		inv    model.Invoice
		status string
		date   string
	)
	err = s.queryRow(ctx, queryInvoiceByID, parsed.String()).Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.Amount,
		&status,
		&date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Invoice{}, ErrNotFound
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("query invoice %s: %w", id, err)
	}

	inv.Status = model.InvoiceStatus(status)
	if inv.Date, err = parseDate(date); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

func (s *SQLStore) Customers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.query(ctx, queryCustomers)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) CustomerTotals(ctx context.Context, query string) ([]model.CustomerTotals, error) {
	pattern := likePattern(normalizeQuery(query))

	rows, err := s.query(ctx, queryCustomerTotals, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("query customer totals: %w", err)
	}
	defer rows.Close()

	var out []model.CustomerTotals
	for rows.Next() {
		var c model.CustomerTotals
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.ImageURL,
			&c.TotalInvoices,
			&c.TotalPending,
			&c.TotalPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer totals: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanInvoiceRecords(rows *sql.Rows) ([]model.InvoiceRecord, error) {
	defer rows.Close()

	var out []model.InvoiceRecord
	for rows.Next() {
		var (
			rec    model.InvoiceRecord
			date   string
			status string
		)
		err := rows.Scan(
			&rec.ID,
			&rec.Amount,
			&date,
			&status,
			&rec.Name,
			&rec.Email,
			&rec.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}

		rec.Status = model.InvoiceStatus(status)
		if rec.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse invoice date %q: %w", s, err)
	}
	return t, nil
}

func repeat(v any, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = v
	}
	return out
}
