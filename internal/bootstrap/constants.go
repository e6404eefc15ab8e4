package bootstrap

import "time"

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Session log files are named session_<timestamp>.log inside LOG_DIR.
// Timestamps sort lexically, which cleanupLogs relies on.
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9
)

// Event publishing
const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second
	EventDeadLetterFile    = "event_deadletter.jsonl"
)

// Background work
const (
	WorkerPoolSize   = 2
	WorkerQueueSize  = 16
	WorkerJobTimeout = 10 * time.Minute
	CleanupJobName   = "eventlog-retention"
)

const (
	RedisPingTimeout = 5 * time.Second
	ShutdownTimeout  = 30 * time.Second
)

const (
	LogMsgLoggingInitialized         = "Logging initialized"
	LogMsgStartingServer             = "Starting hunter server"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgFailedDeleteOldLog         = "Failed to delete old log file"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgUsingMemoryStorage         = "Using in-memory storage"
	LogMsgUsingPostgresStorage       = "Using PostgreSQL storage"
	LogMsgCatalogSynced              = "Game catalog synced"
	LogMsgRedisConnected             = "Connected to Redis"
	LogMsgCleanupScheduled           = "Event log cleanup scheduled"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
)

// Wrapped error prefixes
const (
	LogMsgFailedCreateLogsDir            = "failed to create logs directory"
	LogMsgFailedOpenLogFile              = "failed to open log file"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedConnectDatabase          = "failed to connect to database"
	ErrMsgFailedMigrate                  = "failed to apply migrations"
	ErrMsgFailedLoadContent              = "failed to load game content"
	ErrMsgFailedSyncCatalog              = "failed to sync game catalog"
	ErrMsgFailedConnectRedis             = "failed to connect to redis"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger     = "failed to subscribe event logger"
)
