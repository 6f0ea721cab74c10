// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client
//   - a server runs workers that process them (consumer) with asynq.Server
//   - a scheduler enqueues periodic tasks on a cron spec
//
// The dashboard uses it to keep the Redis read cache warm.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/config"
)

// JobService holds the Asynq client, worker server and scheduler.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zerolog.Logger

	warmer       CacheWarmer
	warmInterval string
	started      bool
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// The scheduler is only built when cache warming has an interval.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Queue weights split workers roughly 6:3:1.
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	j := &JobService{
		Client: client,
		server: server,
		logger: logger,
	}

	if interval := cfg.Dashboard.CacheWarmInterval; interval > 0 {
		j.scheduler = asynq.NewScheduler(redisOpt, nil)
		j.warmInterval = "@every " + interval.String()
	}

	return j
}

// Start registers task handlers and starts the worker server and, if
// configured, the scheduler. Neither call blocks.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWarmDashboardCache, j.handleWarmCacheTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return fmt.Errorf("start job server: %w", err)
	}
	j.started = true

	if j.scheduler != nil {
		if _, err := j.scheduler.Register(j.warmInterval, NewWarmCacheTask()); err != nil {
			return fmt.Errorf("schedule %s: %w", TaskWarmDashboardCache, err)
		}
		if err := j.scheduler.Start(); err != nil {
			return fmt.Errorf("start job scheduler: %w", err)
		}
		j.logger.Info().Str("spec", j.warmInterval).Msg("scheduled dashboard cache warming")
	}

	return nil
}

// EnqueueWarmCache asks a worker to refresh the cache now.
func (j *JobService) EnqueueWarmCache(ctx context.Context) error {
	info, err := j.Client.EnqueueContext(ctx, NewWarmCacheTask())
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskWarmDashboardCache, err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued cache warm")
	return nil
}

// Stop shuts down the scheduler and workers, then closes the client.
func (j *JobService) Stop() {
	if j.started {
		j.logger.Info().Msg("stopping background job server")
		if j.scheduler != nil {
			j.scheduler.Shutdown()
		}
		j.server.Shutdown()
	}
	j.Client.Close()
}
