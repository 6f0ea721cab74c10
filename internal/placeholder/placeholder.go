// Package placeholder ships the fixture dataset the dashboard runs on when
// no database is configured, and that `dashboard seed` loads into one.
package placeholder

import (
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// Dataset is a full set of dashboard tables.
type Dataset struct {
	Customers []model.Customer
	Invoices  []model.Invoice
	Revenue   []model.Revenue
}

// invoiceNamespace seeds deterministic invoice ids so fixture ids are
// identical across runs and across stores.
var invoiceNamespace = uuid.MustParse("6f1c7d3e-4a0b-4e8f-9d2a-5b7c1e9f3a10")

var customers = []model.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

type invoiceSeed struct {
	customer int
	amount   int64
	status   model.InvoiceStatus
	date     string
}

var invoiceSeeds = []invoiceSeed{
	{0, 15795, model.InvoiceStatusPending, "2022-12-06"},
	{1, 20348, model.InvoiceStatusPending, "2022-11-14"},
	{4, 3040, model.InvoiceStatusPaid, "2022-10-29"},
	{3, 44800, model.InvoiceStatusPaid, "2023-09-10"},
	{5, 34577, model.InvoiceStatusPending, "2023-08-05"},
	{2, 54246, model.InvoiceStatusPending, "2023-07-16"},
	{0, 666, model.InvoiceStatusPending, "2023-06-27"},
	{3, 32545, model.InvoiceStatusPaid, "2023-06-09"},
	{4, 1250, model.InvoiceStatusPaid, "2023-06-17"},
	{5, 8546, model.InvoiceStatusPaid, "2023-06-07"},
	{1, 500, model.InvoiceStatusPaid, "2023-08-19"},
	{5, 8945, model.InvoiceStatusPaid, "2023-06-03"},
	{2, 1000, model.InvoiceStatusPaid, "2022-06-05"},
}

var revenue = []model.Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}

// Default returns a fresh copy of the fixture. Callers may mutate it.
func Default() Dataset {
	invoices := make([]model.Invoice, 0, len(invoiceSeeds))
	for i, s := range invoiceSeeds {
		date, err := time.Parse(model.DateLayout, s.date)
		if err != nil {
			panic("placeholder: bad fixture date " + s.date)
		}
		invoices = append(invoices, model.Invoice{
			ID:         InvoiceID(i),
			CustomerID: customers[s.customer].ID,
			Amount:     s.amount,
			Status:     s.status,
			Date:       date,
		})
	}

	return Dataset{
		Customers: append([]model.Customer(nil), customers...),
		Invoices:  invoices,
		Revenue:   append([]model.Revenue(nil), revenue...),
	}
}

// InvoiceID returns the stable id of the i-th fixture invoice.
func InvoiceID(i int) string {
	return uuid.NewSHA1(invoiceNamespace, []byte{byte(i)}).String()
}
