package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
	ErrMsgBodyTooLarge    = "Request body too large"
)

// Security alert messages
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: repeated failed authentication"
	SecurityAlertHighRate   = "SECURITY ALERT: client over request limit"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting     = "Server starting"
	LogMsgRequestStarted     = "Request started"
	LogMsgRequestCompleted   = "Request completed"
	LogMsgAuthFailed         = "Authentication failed"
	LogMsgInvalidTrustedHost = "Ignoring invalid trusted proxy"
)

// Client tracking limits
const (
	// ClientWindow is the fixed window over which requests are counted per IP
	ClientWindow = 5 * time.Minute

	// MaxRequestsPerWindow is the request budget of one IP per window
	MaxRequestsPerWindow = 1000

	// FailedAuthAlertThreshold is the failed-auth count that starts alerting
	FailedAuthAlertThreshold = 5

	// TrackedClients bounds the number of IPs kept in memory
	TrackedClients = 10000

	// highRateLogEvery throttles over-limit logging to one line per N requests
	highRateLogEvery = 100
)

// MaxRequestBodyBytes caps every request body
const MaxRequestBodyBytes = 1 << 20

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCSP            = "Content-Security-Policy"
)

// securityHeaders are set on every response
var securityHeaders = map[string]string{
	HeaderContentType:    "nosniff",
	HeaderFrameOptions:   "DENY",
	HeaderReferrerPolicy: "strict-origin-when-cross-origin",
	HeaderCSP:            "frame-ancestors 'none'",
}

// PublicPaths are path prefixes served without an API key
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}
