package job

import (
	"time"

	"github.com/hibiken/asynq"
)

// TaskWarmDashboardCache is the task type that refreshes cached dashboard reads.
const TaskWarmDashboardCache = "dashboard:warm_cache"

// NewWarmCacheTask builds a cache warm task. It carries no payload.
//
// Retries are pointless: the next scheduled run does the same work.
func NewWarmCacheTask() *asynq.Task {
	return asynq.NewTask(
		TaskWarmDashboardCache,
		nil,
		asynq.MaxRetry(0),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	)
}
