package item

import "time"

// Cache defaults
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 10 * time.Minute
)

// Log messages
const (
	LogMsgCachePurged      = "Item catalog cache purged"
	LogMsgItemNameFallback = "Item name lookup failed, using ID"
)
