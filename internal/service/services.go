package service

import (
	"github.com/deppfellow/invoice-dashboard/internal/lib/job"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

type Services struct {
	Dashboard *DashboardService
	Job       *job.JobService
}

// NewService builds every service and hands the cache warmer to the job
// worker when both exist.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	dashboard, err := NewDashboardService(repos.Store, s.Config, s.Logger)
	if err != nil {
		return nil, err
	}

	if s.Job != nil && repos.Cached != nil {
		s.Job.SetCacheWarmer(repos.Cached)
	}

	return &Services{
		Dashboard: dashboard,
		Job:       s.Job,
	}, nil
}
