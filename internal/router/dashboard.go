package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
)

func registerDashboardRoutes(g *echo.Group, h *handler.DashboardHandler) {
	routes := h.Routes()

	dashboard := g.Group("/dashboard")
	dashboard.GET("/revenue", routes.Revenue)
	dashboard.GET("/invoices/latest", routes.LatestInvoices)
	dashboard.GET("/cards", routes.Cards)

	invoices := g.Group("/invoices")
	invoices.GET("", routes.Invoices)
	invoices.GET("/pages", routes.InvoicePages)
	invoices.GET("/:id", routes.Invoice)

	customers := g.Group("/customers")
	customers.GET("", routes.Customers)
	customers.GET("/summary", routes.CustomerSummary)
}
