package eventlog

import (
	"context"
	"time"

	"github.com/hunter-yen/hunter-server/internal/logger"
)

// CleanupJob prunes the audit trail when run by a worker pool
type CleanupJob struct {
	service   Service
	retention time.Duration
}

// NewCleanupJob creates a job deleting entries older than retention
func NewCleanupJob(service Service, retention time.Duration) *CleanupJob {
	return &CleanupJob{service: service, retention: retention}
}

func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	start := time.Now()
	deleted, err := j.service.Prune(ctx, j.retention)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldRetention, j.retention)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted,
		LogFieldDeletedCount, deleted,
		LogFieldRetention, j.retention,
		LogFieldDuration, time.Since(start))
	return nil
}
