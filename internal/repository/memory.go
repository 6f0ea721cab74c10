package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
)

// Compile-time interface guard.
var _ Store = (*MemoryStore)(nil)

// MemoryStore serves a placeholder.Dataset from memory.
//
// Every read holds the read lock for its whole computation, so each call
// sees one consistent snapshot. Replace swaps the dataset atomically.
type MemoryStore struct {
	mu        sync.RWMutex
	data      placeholder.Dataset
	customers map[string]model.Customer
}

// NewMemoryStore returns a store over data. The store keeps its own copy.
func NewMemoryStore(data placeholder.Dataset) *MemoryStore {
	s := &MemoryStore{}
	s.Replace(data)
	return s
}

// Replace swaps the served dataset.
func (s *MemoryStore) Replace(data placeholder.Dataset) {
	copied := placeholder.Dataset{
		Customers: append([]model.Customer(nil), data.Customers...),
		Invoices:  append([]model.Invoice(nil), data.Invoices...),
		Revenue:   append([]model.Revenue(nil), data.Revenue...),
	}

	byID := make(map[string]model.Customer, len(copied.Customers))
	for _, c := range copied.Customers {
		byID[c.ID] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = copied
	s.customers = byID
}

func (s *MemoryStore) Revenue(ctx context.Context) ([]model.Revenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Revenue(nil), s.data.Revenue...), nil
}

func (s *MemoryStore) LatestInvoices(ctx context.Context, limit int) ([]model.InvoiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.sortedRecords("")
	if err != nil {
		return nil, err
	}
	start, end := pageBounds(len(rows), limit, 0)
	return rows[start:end], nil
}

func (s *MemoryStore) CardTotals(ctx context.Context) (model.CardTotals, error) {
	if err := ctx.Err(); err != nil {
		return model.CardTotals{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := model.CardTotals{
		NumberOfCustomers: len(s.data.Customers),
		NumberOfInvoices:  len(s.data.Invoices),
	}
	for _, inv := range s.data.Invoices {
		switch inv.Status {
		case model.InvoiceStatusPaid:
			totals.TotalPaid += inv.Amount
		case model.InvoiceStatusPending:
			totals.TotalPending += inv.Amount
		}
	}
	return totals, nil
}

func (s *MemoryStore) FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]model.InvoiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.sortedRecords(normalizeQuery(query))
	if err != nil {
		return nil, err
	}
	start, end := pageBounds(len(rows), limit, offset)
	return rows[start:end], nil
}

func (s *MemoryStore) CountFilteredInvoices(ctx context.Context, query string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.sortedRecords(normalizeQuery(query))
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *MemoryStore) InvoiceByID(ctx context.Context, id string) (model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return model.Invoice{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.data.Invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, ErrNotFound
}

func (s *MemoryStore) Customers(ctx context.Context) ([]model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Customer(nil), s.data.Customers...), nil
}

func (s *MemoryStore) CustomerTotals(ctx context.Context, query string) ([]model.CustomerTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	q := normalizeQuery(query)
	index := make(map[string]int)
	var out []model.CustomerTotals
	for _, c := range s.data.Customers {
		if !matchCustomer(c, q) {
			continue
		}
		index[c.ID] = len(out)
		out = append(out, model.CustomerTotals{Customer: c})
	}

	for _, inv := range s.data.Invoices {
		i, ok := index[inv.CustomerID]
		if !ok {
			continue
		}
		out[i].TotalInvoices++
		switch inv.Status {
		case model.InvoiceStatusPaid:
			out[i].TotalPaid += inv.Amount
		case model.InvoiceStatusPending:
			out[i].TotalPending += inv.Amount
		}
	}
	return out, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// sortedRecords joins invoices with customers, keeps those matching q and
// orders them date descending, id ascending. Callers hold the read lock.
func (s *MemoryStore) sortedRecords(q string) ([]model.InvoiceRecord, error) {
	rows := make([]model.InvoiceRecord, 0, len(s.data.Invoices))
	for _, inv := range s.data.Invoices {
		c, ok := s.customers[inv.CustomerID]
		if !ok {
			return nil, fmt.Errorf("invoice %s: customer %s does not exist", inv.ID, inv.CustomerID)
		}
		rec := model.InvoiceRecord{
			ID:       inv.ID,
			Amount:   inv.Amount,
			Date:     inv.Date,
			Status:   inv.Status,
			Name:     c.Name,
			Email:    c.Email,
			ImageURL: c.ImageURL,
		}
		if matchInvoice(rec, q) {
			rows = append(rows, rec)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}
