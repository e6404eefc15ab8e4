package logger

const (
	FormatJSON = "json"
	FormatText = "text"

	levelWarningAlias = "warning"
)

// Attribute keys shared by every log line
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)
