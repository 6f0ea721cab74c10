package config

import (
	"fmt"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/lib/money"
)

// DashboardConfig tunes the data-access operations.
type DashboardConfig struct {
	// RevenueDelay is an artificial wait before revenue is read. It models
	// a slow upstream query for demos; 0 disables it.
	RevenueDelay time.Duration `koanf:"revenue_delay" validate:"min=0"`

	// LatestInvoicesLimit is how many invoices the "latest" list returns
	// when the caller does not ask for a specific number.
	LatestInvoicesLimit int `koanf:"latest_invoices_limit" validate:"min=1"`

	// ItemsPerPage is the default invoice table page size.
	ItemsPerPage int `koanf:"items_per_page" validate:"min=1,max=100"`

	// Locale drives name collation, digit grouping and the decimal mark,
	// e.g. "en-US". Locales that print non-ASCII digits are rejected.
	Locale string `koanf:"locale" validate:"required"`

	// CurrencySymbol prefixes every formatted amount.
	CurrencySymbol string `koanf:"currency_symbol" validate:"required"`

	// CacheTTL is how long revenue and card totals stay in Redis.
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"min=0"`

	// CacheWarmInterval schedules the cache warming job. 0 disables it.
	CacheWarmInterval time.Duration `koanf:"cache_warm_interval" validate:"min=0"`
}

// DefaultDashboardConfig returns the stock settings: a 3s revenue
// delay, 5 latest invoices and 6 rows per invoice page.
func DefaultDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		RevenueDelay:        3 * time.Second,
		LatestInvoicesLimit: 5,
		ItemsPerPage:        6,
		Locale:              "en-US",
		CurrencySymbol:      "$",
		CacheTTL:            time.Minute,
		CacheWarmInterval:   5 * time.Minute,
	}
}

// Validate checks rules struct tags cannot express.
func (c *DashboardConfig) Validate() error {
	if _, err := money.NewFormatter(c.Locale, c.CurrencySymbol); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}
