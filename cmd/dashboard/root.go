package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/logger"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

var version = "1.0.0"

// app carries what every subcommand shares. Backends are opened lazily
// by open so `--help` never touches a database.
type app struct {
	cfg           *config.Config
	loggerService *logger.LoggerService
	log           zerolog.Logger

	server   *server.Server
	repos    *repository.Repositories
	services *service.Services
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Invoice dashboard data access",
		Long: `dashboard reads revenue, invoices and customers for the invoice
dashboard from Postgres, SQLite or the built-in placeholder data.

Configuration comes from DASHBOARD_* environment variables (and a .env
file if present), e.g.

  DASHBOARD_DATABASE__DRIVER=sqlite
  DASHBOARD_DATABASE__PATH=dashboard.db
  DASHBOARD_DASHBOARD__REVENUE_DELAY=0s`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
	)
	root.AddCommand(newReadCmds(a)...)

	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	loggerService, err := logger.NewLoggerService(&cfg.Observability)
	if err != nil {
		return err
	}
	a.loggerService = loggerService
	a.log = logger.NewLoggerWithOutput(&cfg.Observability, loggerService, os.Stderr)

	return nil
}

// open connects the backends and builds the service layer.
func (a *app) open() error {
	srv, err := server.New(a.cfg, &a.log, a.loggerService)
	if err != nil {
		return err
	}
	a.server = srv

	a.repos = repository.NewRepositories(srv)

	services, err := service.NewService(srv, a.repos)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}
	a.services = services

	return nil
}

// requireDB opens the backends and fails when no SQL database is configured.
func (a *app) requireDB() error {
	if a.cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("no database configured: set DASHBOARD_DATABASE__DRIVER to %q or %q",
			config.DriverPostgres, config.DriverSQLite)
	}
	return a.open()
}

// close releases whatever init and open managed to build. It is safe to
// call when neither ran.
func (a *app) close() error {
	var err error
	if a.server != nil {
		err = a.server.Close()
		a.server = nil
	}
	a.loggerService.Shutdown()
	return err
}
