package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
)

const (
	seedCustomer = `INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`
	seedInvoice  = `INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`
	seedRevenue  = `INSERT INTO revenue (month, revenue) VALUES (?, ?) ON CONFLICT (month) DO NOTHING`
)

// SeedResult counts the rows a Seed call inserted. Rows that already
// existed are skipped and not counted.
type SeedResult struct {
	Customers int64
	Invoices  int64
	Revenue   int64
}

// Seed loads data into the dashboard tables in one transaction.
// Running it twice is harmless.
func Seed(ctx context.Context, db *Database, data placeholder.Dataset) (SeedResult, error) {
	var res SeedResult

	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	exec := func(query string, args ...any) (int64, error) {
		r, err := tx.ExecContext(ctx, db.Dialect.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		return r.RowsAffected()
	}

	for _, c := range data.Customers {
		n, err := exec(seedCustomer, c.ID, c.Name, c.Email, c.ImageURL)
		if err != nil {
			return res, fmt.Errorf("seed customer %s: %w", c.ID, err)
		}
		res.Customers += n
	}

	for _, inv := range data.Invoices {
		n, err := exec(seedInvoice, inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date.Format(model.DateLayout))
		if err != nil {
			return res, fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
		res.Invoices += n
	}

	for _, r := range data.Revenue {
		n, err := exec(seedRevenue, r.Month, r.Revenue)
		if err != nil {
			return res, fmt.Errorf("seed revenue %s: %w", r.Month, err)
		}
		res.Revenue += n
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit seed transaction: %w", err)
	}
	return res, nil
}
