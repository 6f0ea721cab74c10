package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the two-value invoice lifecycle enum.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// DateLayout is how invoice dates are rendered as text, both for display
// and for substring search.
const DateLayout = "2006-01-02"

// Invoice is a single invoice as stored. Amount is in minor units (cents).
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       time.Time     `json:"date"`
}

// InvoiceRecord is an invoice joined with its owning customer, still
// carrying the raw amount. Stores return these; the service formats them.
type InvoiceRecord struct {
	ID       string
	Amount   int64
	Date     time.Time
	Status   InvoiceStatus
	Name     string
	Email    string
	ImageURL string
}

// InvoiceRow is the display shape for invoice lists.
type InvoiceRow struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	ImageURL string        `json:"image_url"`
	Date     string        `json:"date"`
	Status   InvoiceStatus `json:"status"`
	Amount   string        `json:"amount"`
}

// InvoiceForm is the single-invoice view used by edit forms.
//
// Unlike every list shape, Amount is in major units (dollars).
type InvoiceForm struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
}
