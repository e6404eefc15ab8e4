package crafting

// Log messages
const (
	LogMsgItemCrafted     = "Item crafted"
	LogMsgCraftRejected   = "Craft rejected"
	LogMsgFailedToPublish = "Failed to publish craft event"
)

// Error contexts
const (
	ErrContextFailedToLoadItem   = "failed to load craft material"
	ErrContextFailedToLoadResult = "failed to load craft result"
)
