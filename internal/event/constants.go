package event

const (
	// EventSchemaVersion is stamped on every published event
	EventSchemaVersion = "1.0"

	DeadLetterFilePermissions = 0o644
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, retrying in background"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
)
