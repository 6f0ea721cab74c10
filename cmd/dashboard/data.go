package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/database"
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDB(); err != nil {
				return err
			}
			return database.Migrate(cmd.Context(), &a.log, a.server.DB)
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the placeholder customers, invoices and revenue",
		Long: `seed inserts the placeholder data set into the configured database.
Rows that already exist are left alone, so seeding twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDB(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if migrate {
				if err := database.Migrate(ctx, &a.log, a.server.DB); err != nil {
					return err
				}
			}

			res, err := database.Seed(ctx, a.server.DB, placeholder.Default())
			if err != nil {
				return err
			}

			a.log.Info().
				Int64("customers", res.Customers).
				Int64("invoices", res.Invoices).
				Int64("revenue", res.Revenue).
				Msg("seeded database")

			// Cached totals predate the new rows.
			if cached := a.repos.Cached; cached != nil {
				if err := cached.Invalidate(ctx); err != nil {
					return fmt.Errorf("invalidate cache: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before seeding")
	return cmd
}
