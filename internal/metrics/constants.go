package metrics

// Namespace prefixes every metric this service exports
const Namespace = "hunter"

const (
	subsystemHTTP     = "http"
	subsystemEvents   = "events"
	subsystemGame     = "game"
	subsystemWorker   = "worker"
	subsystemSecurity = "security"
	subsystemCache    = "item_cache"
)

// Label names
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelAction     = "action"
	LabelState      = "state"
	LabelSource     = "source"
	LabelDifficulty = "difficulty"
	LabelFunc       = "func"
	LabelItem       = "item"
	LabelEvent      = "event"
	LabelResult     = "result"
	LabelReason     = "reason"
)

// Label values
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
	ResultWon      = "won"
	ResultLost     = "lost"
	SourceMission  = "mission"
	PathUnmatched  = "unmatched"

	ReasonRateLimited = "rate_limited"
	ReasonBadAPIKey   = "bad_api_key"
	ReasonBodyTooBig  = "body_too_large"
)

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
