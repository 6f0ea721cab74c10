package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/lib/utils"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

// readCmd wraps a read operation: it opens the backends, runs fetch and
// prints the result as JSON on stdout.
func readCmd(a *app, cmd *cobra.Command, fetch func(ctx context.Context, svc *service.DashboardService, args []string) (any, error)) *cobra.Command {
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if err := a.open(); err != nil {
			return err
		}

		result, err := fetch(c.Context(), a.services.Dashboard, args)
		if err != nil {
			return err
		}
		return utils.PrintJSON(c.OutOrStdout(), result)
	}
	return cmd
}

func newReadCmds(a *app) []*cobra.Command {
	var (
		noDelay  bool
		limit    int
		query    string
		page     int
		pageSize int
	)

	revenue := readCmd(a, &cobra.Command{
		Use:   "revenue",
		Short: "Print monthly revenue",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		if noDelay {
			svc.SetDelay(service.NoDelay)
		}
		return svc.FetchRevenue(ctx)
	})
	revenue.Flags().BoolVar(&noDelay, "no-delay", false, "skip the configured revenue delay")

	latest := readCmd(a, &cobra.Command{
		Use:   "latest-invoices",
		Short: "Print the most recent invoices",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		return svc.FetchLatestInvoices(ctx, limit)
	})
	latest.Flags().IntVar(&limit, "limit", 0, "number of invoices (0 uses the configured default)")

	cards := readCmd(a, &cobra.Command{
		Use:   "cards",
		Short: "Print the summary card figures",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		return svc.FetchCardData(ctx)
	})

	invoices := readCmd(a, &cobra.Command{
		Use:   "invoices",
		Short: "Print one page of invoices matching a query",
		Example: `  dashboard invoices --query paid --page 2
  dashboard invoices --query 2022-10 --page-size 10`,
		Args: cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		return svc.FetchFilteredInvoices(ctx, query, page, pageSize)
	})
	invoices.Flags().StringVar(&query, "query", "", "case-insensitive search text")
	invoices.Flags().IntVar(&page, "page", 1, "1-based page number")
	invoices.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (0 uses the configured default)")

	pages := readCmd(a, &cobra.Command{
		Use:   "invoice-pages",
		Short: "Print how many invoice pages a query spans",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		total, err := svc.FetchInvoicesPages(ctx, query, pageSize)
		if err != nil {
			return nil, err
		}
		return map[string]int{"total_pages": total}, nil
	})
	pages.Flags().StringVar(&query, "query", "", "case-insensitive search text")
	pages.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (0 uses the configured default)")

	invoice := readCmd(a, &cobra.Command{
		Use:   "invoice <id>",
		Short: "Print one invoice as the edit form sees it",
		Args:  cobra.ExactArgs(1),
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		id := args[0]
		form, ok, err := svc.FetchInvoiceByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("invoice %q not found", id)
		}
		return form, nil
	})

	customers := readCmd(a, &cobra.Command{
		Use:   "customers",
		Short: "Print every customer ordered by name",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		return svc.FetchCustomers(ctx)
	})

	summary := readCmd(a, &cobra.Command{
		Use:   "customer-summary",
		Short: "Print customers matching a query with their invoice totals",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, svc *service.DashboardService, args []string) (any, error) {
		return svc.FetchFilteredCustomers(ctx, query)
	})
	summary.Flags().StringVar(&query, "query", "", "case-insensitive name or email search text")

	return []*cobra.Command{revenue, latest, cards, invoices, pages, invoice, customers, summary}
}
