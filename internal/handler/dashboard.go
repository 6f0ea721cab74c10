package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// DashboardHandler exposes the dashboard read operations over HTTP.
type DashboardHandler struct {
	Handler
	dashboard *service.DashboardService
}

func NewDashboardHandler(s *server.Server, dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		Handler:   NewHandler(s),
		dashboard: dashboard,
	}
}

// EmptyRequest is for endpoints without parameters.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

type LatestInvoicesRequest struct {
	// Limit of 0 means the configured default.
	Limit int `query:"limit" validate:"min=0,max=100"`
}

func (r *LatestInvoicesRequest) Validate() error { return validation.Struct(r) }

type FilteredInvoicesRequest struct {
	Query    string `query:"query" validate:"max=200"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

func (r *FilteredInvoicesRequest) Validate() error { return validation.Struct(r) }

type InvoicePagesRequest struct {
	Query    string `query:"query" validate:"max=200"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

func (r *InvoicePagesRequest) Validate() error { return validation.Struct(r) }

type InvoiceByIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *InvoiceByIDRequest) Validate() error { return validation.Struct(r) }

type CustomerSummaryRequest struct {
	Query string `query:"query" validate:"max=200"`
}

func (r *CustomerSummaryRequest) Validate() error { return validation.Struct(r) }

// InvoicePagesResponse is the body of GET /invoices/pages.
type InvoicePagesResponse struct {
	TotalPages int `json:"total_pages"`
}

var invoiceNotFoundCode = "INVOICE_NOT_FOUND"

func (h *DashboardHandler) GetRevenue(c echo.Context, _ *EmptyRequest) ([]model.Revenue, error) {
	revenue, err := h.dashboard.FetchRevenue(c.Request().Context())
	return nonNil(revenue), err
}

func (h *DashboardHandler) GetLatestInvoices(c echo.Context, req *LatestInvoicesRequest) ([]model.InvoiceRow, error) {
	rows, err := h.dashboard.FetchLatestInvoices(c.Request().Context(), req.Limit)
	return nonNil(rows), err
}

func (h *DashboardHandler) GetCardData(c echo.Context, _ *EmptyRequest) (model.CardData, error) {
	return h.dashboard.FetchCardData(c.Request().Context())
}

func (h *DashboardHandler) GetFilteredInvoices(c echo.Context, req *FilteredInvoicesRequest) ([]model.InvoiceRow, error) {
	rows, err := h.dashboard.FetchFilteredInvoices(c.Request().Context(), req.Query, req.Page, req.PageSize)
	return nonNil(rows), err
}

func (h *DashboardHandler) GetInvoicesPages(c echo.Context, req *InvoicePagesRequest) (InvoicePagesResponse, error) {
	pages, err := h.dashboard.FetchInvoicesPages(c.Request().Context(), req.Query, req.PageSize)
	return InvoicePagesResponse{TotalPages: pages}, err
}

func (h *DashboardHandler) GetInvoice(c echo.Context, req *InvoiceByIDRequest) (model.InvoiceForm, error) {
	form, ok, err := h.dashboard.FetchInvoiceByID(c.Request().Context(), req.ID)
	if err != nil {
		return model.InvoiceForm{}, err
	}
	if !ok {
		return model.InvoiceForm{}, errs.NewNotFoundError("Invoice not found", true, &invoiceNotFoundCode)
	}
	return form, nil
}

func (h *DashboardHandler) GetCustomers(c echo.Context, _ *EmptyRequest) ([]model.Customer, error) {
	customers, err := h.dashboard.FetchCustomers(c.Request().Context())
	return nonNil(customers), err
}

func (h *DashboardHandler) GetCustomerSummary(c echo.Context, req *CustomerSummaryRequest) ([]model.CustomerSummary, error) {
	rows, err := h.dashboard.FetchFilteredCustomers(c.Request().Context(), req.Query)
	return nonNil(rows), err
}

// Routes returns the typed endpoints wrapped for Echo, keyed by what the
// router mounts them as.
func (h *DashboardHandler) Routes() DashboardRoutes {
	return DashboardRoutes{
		Revenue:         Handle(h.Handler, h.GetRevenue, http.StatusOK, func() *EmptyRequest { return &EmptyRequest{} }),
		LatestInvoices:  Handle(h.Handler, h.GetLatestInvoices, http.StatusOK, func() *LatestInvoicesRequest { return &LatestInvoicesRequest{} }),
		Cards:           Handle(h.Handler, h.GetCardData, http.StatusOK, func() *EmptyRequest { return &EmptyRequest{} }),
		Invoices:        Handle(h.Handler, h.GetFilteredInvoices, http.StatusOK, func() *FilteredInvoicesRequest { return &FilteredInvoicesRequest{} }),
		InvoicePages:    Handle(h.Handler, h.GetInvoicesPages, http.StatusOK, func() *InvoicePagesRequest { return &InvoicePagesRequest{} }),
		Invoice:         Handle(h.Handler, h.GetInvoice, http.StatusOK, func() *InvoiceByIDRequest { return &InvoiceByIDRequest{} }),
		Customers:       Handle(h.Handler, h.GetCustomers, http.StatusOK, func() *EmptyRequest { return &EmptyRequest{} }),
		CustomerSummary: Handle(h.Handler, h.GetCustomerSummary, http.StatusOK, func() *CustomerSummaryRequest { return &CustomerSummaryRequest{} }),
	}
}

type DashboardRoutes struct {
	Revenue         echo.HandlerFunc
	LatestInvoices  echo.HandlerFunc
	Cards           echo.HandlerFunc
	Invoices        echo.HandlerFunc
	InvoicePages    echo.HandlerFunc
	Invoice         echo.HandlerFunc
	Customers       echo.HandlerFunc
	CustomerSummary echo.HandlerFunc
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
