package repository

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/database"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
)

// storeFactories builds every Store implementation over the fixture so
// the same expectations run against each.
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore(placeholder.Default())
		},
		"sqlite": func(t *testing.T) Store {
			return newSQLiteStore(t, placeholder.Default())
		},
	}
}

func newSQLiteStore(t *testing.T, data placeholder.Dataset) *SQLStore {
	t.Helper()
	logger := zerolog.Nop()
	ctx := context.Background()

	db, err := database.OpenSQLite(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, &logger, db))
	_, err = database.Seed(ctx, db, data)
	require.NoError(t, err)

	return NewSQLStore(db.SQL, db.Dialect)
}

func TestStoreConformance(t *testing.T) {
	data := placeholder.Default()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			t.Run("revenue in store order", func(t *testing.T) {
				revenue, err := store.Revenue(ctx)
				require.NoError(t, err)
				assert.Equal(t, data.Revenue, revenue)
			})

			t.Run("latest invoices ordered by date then id", func(t *testing.T) {
				rows, err := store.LatestInvoices(ctx, 5)
				require.NoError(t, err)
				require.Len(t, rows, 5)
				assert.Equal(t, "2023-09-10", rows[0].Date.Format(model.DateLayout))
				assert.Equal(t, int64(44800), rows[0].Amount)
				assert.Equal(t, "Michael Novotny", rows[0].Name)
				assertSortedByDateThenID(t, rows)
			})

			t.Run("card totals", func(t *testing.T) {
				totals, err := store.CardTotals(ctx)
				require.NoError(t, err)

				want := model.CardTotals{NumberOfCustomers: len(data.Customers), NumberOfInvoices: len(data.Invoices)}
				for _, inv := range data.Invoices {
					if inv.Status == model.InvoiceStatusPaid {
						want.TotalPaid += inv.Amount
					} else {
						want.TotalPending += inv.Amount
					}
				}
				assert.Equal(t, want, totals)
			})

			t.Run("filtered invoices", func(t *testing.T) {
				tests := []struct {
					query string
					want  int
				}{
					{"", 13},
					{"EVIL", 2},
					{"lee@", 2},
					{"15795", 1},
					{"2023-06", 5},
					{"PAID", 8},
					{"%", 0},
					{"_", 0},
				}
				for _, tt := range tests {
					rows, err := store.FilteredInvoices(ctx, tt.query, 100, 0)
					require.NoError(t, err, tt.query)
					assert.Len(t, rows, tt.want, tt.query)
					assertSortedByDateThenID(t, rows)

					count, err := store.CountFilteredInvoices(ctx, tt.query)
					require.NoError(t, err, tt.query)
					assert.Equal(t, tt.want, count, tt.query)
				}
			})

			t.Run("filtered invoices paging", func(t *testing.T) {
				all, err := store.FilteredInvoices(ctx, "", 100, 0)
				require.NoError(t, err)

				page, err := store.FilteredInvoices(ctx, "", 6, 12)
				require.NoError(t, err)
				assert.Equal(t, all[12:], page)

				past, err := store.FilteredInvoices(ctx, "", 6, 18)
				require.NoError(t, err)
				assert.Empty(t, past)

				unbounded, err := store.FilteredInvoices(ctx, "", math.MaxInt, 0)
				require.NoError(t, err)
				assert.Equal(t, all, unbounded)

				tail, err := store.FilteredInvoices(ctx, "", math.MaxInt, 12)
				require.NoError(t, err)
				assert.Equal(t, all[12:], tail)

				beyond, err := store.FilteredInvoices(ctx, "", math.MaxInt, math.MaxInt)
				require.NoError(t, err)
				assert.Empty(t, beyond)
			})

			t.Run("invoice by id", func(t *testing.T) {
				inv, err := store.InvoiceByID(ctx, placeholder.InvoiceID(3))
				require.NoError(t, err)
				assert.Equal(t, data.Invoices[3].ID, inv.ID)
				assert.Equal(t, data.Invoices[3].CustomerID, inv.CustomerID)
				assert.Equal(t, data.Invoices[3].Amount, inv.Amount)
				assert.Equal(t, data.Invoices[3].Status, inv.Status)
				assert.True(t, data.Invoices[3].Date.Equal(inv.Date))

				_, err = store.InvoiceByID(ctx, "00000000-0000-0000-0000-000000000000")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("customers", func(t *testing.T) {
				customers, err := store.Customers(ctx)
				require.NoError(t, err)
				assert.ElementsMatch(t, data.Customers, customers)
			})

			t.Run("customer totals", func(t *testing.T) {
				totals, err := store.CustomerTotals(ctx, "DELBA")
				require.NoError(t, err)
				require.Len(t, totals, 1)
				assert.Equal(t, model.CustomerTotals{
					Customer:      data.Customers[1],
					TotalInvoices: 2,
					TotalPending:  20348,
					TotalPaid:     500,
				}, totals[0])

				all, err := store.CustomerTotals(ctx, "")
				require.NoError(t, err)
				assert.Len(t, all, len(data.Customers))

				none, err := store.CustomerTotals(ctx, "nobody")
				require.NoError(t, err)
				assert.Empty(t, none)
			})

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, store.Ping(ctx))
			})
		})
	}
}

func TestStoreCustomerWithoutInvoices(t *testing.T) {
	data := placeholder.Default()
	lonely := model.Customer{ID: "9b2f3c1d-0000-4000-8000-000000000001", Name: "Lonely Customer", Email: "lonely@example.com"}
	data.Customers = append(data.Customers, lonely)

	stores := map[string]Store{
		"memory": NewMemoryStore(data),
		"sqlite": newSQLiteStore(t, data),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			totals, err := store.CustomerTotals(context.Background(), "lonely")
			require.NoError(t, err)
			require.Len(t, totals, 1)
			assert.Equal(t, model.CustomerTotals{Customer: lonely}, totals[0])
		})
	}
}

func TestStoreSearchFoldsUnicodeCase(t *testing.T) {
	data := placeholder.Default()
	emile := model.Customer{ID: "9b2f3c1d-0000-4000-8000-000000000002", Name: "Émile Zoë", Email: "emile@example.com"}
	data.Customers = append(data.Customers, emile)
	data.Invoices = append(data.Invoices, model.Invoice{
		ID:         placeholder.InvoiceID(len(data.Invoices)),
		CustomerID: emile.ID,
		Amount:     4200,
		Status:     model.InvoiceStatusPaid,
		Date:       time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	stores := map[string]Store{
		"memory": NewMemoryStore(data),
		"sqlite": newSQLiteStore(t, data),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, q := range []string{"émile", "ÉMILE", "zoë", "ZOË"} {
				rows, err := store.FilteredInvoices(ctx, q, 10, 0)
				require.NoError(t, err, q)
				require.Len(t, rows, 1, q)
				assert.Equal(t, emile.Name, rows[0].Name, q)

				count, err := store.CountFilteredInvoices(ctx, q)
				require.NoError(t, err, q)
				assert.Equal(t, 1, count, q)

				totals, err := store.CustomerTotals(ctx, q)
				require.NoError(t, err, q)
				require.Len(t, totals, 1, q)
				assert.Equal(t, emile, totals[0].Customer, q)
			}
		})
	}
}

func TestStoreSearchKeepsWhitespace(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			ctx := context.Background()

			// "Lee Robinson" has no space after "lee".
			n, err := store.CountFilteredInvoices(ctx, "lee ")
			require.NoError(t, err)
			assert.Zero(t, n)

			n, err = store.CountFilteredInvoices(ctx, "lee robinson")
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestSQLStoreInvoiceByIDRejectsMalformedID(t *testing.T) {
	store := newSQLiteStore(t, placeholder.Default())

	_, err := store.InvoiceByID(context.Background(), "1 OR 1=1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	store := NewMemoryStore(placeholder.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Revenue(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = store.CardTotals(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMemoryStoreDanglingCustomer(t *testing.T) {
	data := placeholder.Default()
	data.Invoices[0].CustomerID = "missing"
	store := NewMemoryStore(data)

	_, err := store.FilteredInvoices(context.Background(), "", 10, 0)
	assert.Error(t, err)
}

func TestMemoryStoreReplace(t *testing.T) {
	store := NewMemoryStore(placeholder.Default())
	store.Replace(placeholder.Dataset{})

	totals, err := store.CardTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.CardTotals{}, totals)
}

func assertSortedByDateThenID(t *testing.T, rows []model.InvoiceRecord) {
	t.Helper()
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Date.Equal(cur.Date) {
			assert.Less(t, prev.ID, cur.ID)
			continue
		}
		assert.True(t, prev.Date.After(cur.Date), "%s before %s", prev.Date, cur.Date)
	}
}
