package model

// Customer is a single customer as stored.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerTotals is a customer left-joined with its invoices and grouped.
// Sums are raw minor units and default to 0 when no rows match.
type CustomerTotals struct {
	Customer
	TotalInvoices int
	TotalPending  int64
	TotalPaid     int64
}

// CustomerSummary is the display row of the customers table.
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int    `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}
