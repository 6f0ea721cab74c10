package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
)

// CacheWarmer reloads cached reads from the backing store.
type CacheWarmer interface {
	Warm(ctx context.Context) error
}

// SetCacheWarmer wires the handler for TaskWarmDashboardCache.
// Call it before Start.
func (j *JobService) SetCacheWarmer(w CacheWarmer) {
	j.warmer = w
}

func (j *JobService) handleWarmCacheTask(ctx context.Context, t *asynq.Task) error {
	if j.warmer == nil {
		j.logger.Warn().Str("type", t.Type()).Msg("no cache warmer configured, skipping task")
		return nil
	}

	start := time.Now()
	if err := j.warmer.Warm(ctx); err != nil {
		j.logger.Error().
			Str("type", t.Type()).
			Err(err).
			Msg("failed to warm dashboard cache")
		return err
	}

	j.logger.Info().
		Str("type", t.Type()).
		Dur("took", time.Since(start)).
		Msg("warmed dashboard cache")

	return nil
}
