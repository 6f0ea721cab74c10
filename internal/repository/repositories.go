package repository

import (
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// Repositories is the container the service layer is built from.
type Repositories struct {
	// Store is what the service reads through. It may be the cached view.
	Store Store

	// Cached is set when Redis is configured. It is the same object as
	// Store, typed so the cache-warming job can reach Warm.
	Cached *CachedStore
}

// cacheKeyPrefix namespaces dashboard keys in a shared Redis.
const cacheKeyPrefix = "dashboard:"

// NewRepositories picks the store from what the server managed to open:
//
//   - no database: the placeholder fixture in memory
//   - a database: SQLStore over it
//   - Redis on top of either: a CachedStore wrapper
func NewRepositories(s *server.Server) *Repositories {
	var store Store
	if s.DB != nil {
		store = NewSQLStore(s.DB.SQL, s.DB.Dialect)
	} else {
		store = NewMemoryStore(placeholder.Default())
	}

	repos := &Repositories{Store: store}

	if s.Redis != nil {
		cached := NewCachedStore(
			store,
			NewRedisCache(s.Redis, cacheKeyPrefix),
			s.Config.Dashboard.CacheTTL,
			s.Logger,
		)
		repos.Store = cached
		repos.Cached = cached
	}

	return repos
}
