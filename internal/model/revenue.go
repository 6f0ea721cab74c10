package model

// Revenue is one month of revenue. Month is a short label such as "Jan".
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// CardTotals are the raw dashboard card figures, all read from one snapshot.
type CardTotals struct {
	NumberOfCustomers int
	NumberOfInvoices  int
	TotalPaid         int64
	TotalPending      int64
}

// CardData is the display shape of the dashboard summary cards.
type CardData struct {
	NumberOfCustomers    int    `json:"number_of_customers"`
	NumberOfInvoices     int    `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}
