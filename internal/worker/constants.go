package worker

import "time"

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 5 * time.Minute

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerQueueFull   = "Worker queue full, job dropped"
)
