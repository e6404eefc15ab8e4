package eventlog

// PayloadKeyUserID is the payload field naming the acting player
const PayloadKeyUserID = "user_id"

// DefaultHistoryLimit caps per-player history queries
const DefaultHistoryLimit = 50

const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded, skipping audit entry"
	LogMsgFailedToLogEvent        = "Failed to append audit entry"
	LogMsgEventLogged             = "Audit entry appended"
	LogMsgCleanupJobFailed        = "Event log cleanup failed"
	LogMsgCleanupJobCompleted     = "Event log cleanup completed"
)

const (
	LogFieldType         = "type"
	LogFieldUserID       = "user_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deleted"
)
