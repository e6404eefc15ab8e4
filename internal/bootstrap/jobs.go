package bootstrap

import (
	"log/slog"
	"time"

	"github.com/hunter-yen/hunter-server/internal/config"
	"github.com/hunter-yen/hunter-server/internal/eventlog"
	"github.com/hunter-yen/hunter-server/internal/scheduler"
	"github.com/hunter-yen/hunter-server/internal/worker"
)

// StartBackgroundJobs starts the worker pool and schedules the event log
// retention cleanup. A non-positive retention disables the cleanup.
func StartBackgroundJobs(cfg *config.Config, eventLog eventlog.Service) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(WorkerPoolSize, WorkerQueueSize, worker.WithJobTimeout(WorkerJobTimeout))
	pool.Start()
	sched := scheduler.New(pool)

	if cfg.EventRetentionDays > 0 && cfg.CleanupInterval > 0 {
		job := eventlog.NewCleanupJob(eventLog, time.Duration(cfg.EventRetentionDays)*24*time.Hour)
		sched.RunNow(CleanupJobName, job)
		sched.Schedule(CleanupJobName, cfg.CleanupInterval, job)
		slog.Info(LogMsgCleanupScheduled,
			"retention_days", cfg.EventRetentionDays,
			"interval", cfg.CleanupInterval)
	}

	return pool, sched
}
