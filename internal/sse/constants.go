package sse

import "time"

const (
	BroadcastBufferSize = 128
	ClientEventBuffer   = 32
)

// KeepaliveInterval keeps idle connections open through proxies
const KeepaliveInterval = 30 * time.Second

// Stream-only event types; game events keep their bus type names
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters accepted by Handler
const (
	QueryTypes  = "types"
	QueryUserID = "userId"
)

const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgBroadcastDropped   = "Stream broadcast buffer full, event dropped"
	LogMsgClientLagging      = "Stream client buffer full, event skipped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgSubscriberReady    = "Stream subscriber registered"
)
