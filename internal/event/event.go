package event

import "time"

// Type names a domain event, e.g. "mission.transitioned"
type Type string

// Metadata carries transport details such as the request ID
type Metadata map[string]interface{}

// Event is the envelope every game service publishes.
// Payload is one of the *PayloadV1 structs below.
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Game event types
const (
	PlayerRegistered    Type = "player.registered"
	MissionTransitioned Type = "mission.transitioned"
	ItemUsed            Type = "item.used"
	ItemCrafted         Type = "item.crafted"
	DropsResolved       Type = "drop.resolved"
	EncounterTriggered  Type = "encounter.triggered"
	WordleFinished      Type = "wordle.finished"
)

// AllTypes lists every event type published by the game services.
var AllTypes = []Type{
	PlayerRegistered,
	MissionTransitioned,
	ItemUsed,
	ItemCrafted,
	DropsResolved,
	EncounterTriggered,
	WordleFinished,
}

// PlayerRegisteredPayloadV1 is published once per new player
type PlayerRegisteredPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// MissionTransitionPayloadV1 describes one mission state change
type MissionTransitionPayloadV1 struct {
	UserID      string `json:"user_id"`
	TaskID      string `json:"task_id"`
	Action      string `json:"action"`
	FromState   string `json:"from_state,omitempty"`
	ToState     string `json:"to_state"`
	Overtime    bool   `json:"overtime,omitempty"`
	ScoreGained int    `json:"score_gained,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// ItemUsedPayloadV1 describes an applied item use
type ItemUsedPayloadV1 struct {
	UserID    string `json:"user_id"`
	ItemID    string `json:"item_id"`
	ItemFunc  string `json:"item_func"`
	RequestID string `json:"request_id,omitempty"`
	Effects   int    `json:"effects"`
	Timestamp int64  `json:"timestamp"`
}

// ItemCraftedPayloadV1 describes one craft
type ItemCraftedPayloadV1 struct {
	UserID    string `json:"user_id"`
	ItemID    string `json:"item_id"`
	ResultID  string `json:"result_id"`
	Consumed  int    `json:"consumed"`
	Timestamp int64  `json:"timestamp"`
}

// DropsResolvedPayloadV1 describes one drop-table resolution
type DropsResolvedPayloadV1 struct {
	UserID     string   `json:"user_id"`
	Source     string   `json:"source"`
	Difficulty int      `json:"difficulty"`
	ItemIDs    []string `json:"item_ids"`
	Timestamp  int64    `json:"timestamp"`
}

// EncounterPayloadV1 describes an event handler outcome
type EncounterPayloadV1 struct {
	UserID      string `json:"user_id"`
	Encounter   string `json:"encounter"`
	Success     bool   `json:"success"`
	ScoreGained int    `json:"score_gained,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// WordleFinishedPayloadV1 describes a finished minigame
type WordleFinishedPayloadV1 struct {
	UserID    string `json:"user_id"`
	TaskID    string `json:"task_id"`
	Won       bool   `json:"won"`
	Attempts  int    `json:"attempts"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewPlayerRegisteredEvent creates a player registration event
func NewPlayerRegisteredEvent(userID, username string) Event {
	return newEvent(PlayerRegistered, PlayerRegisteredPayloadV1{
		UserID:    userID,
		Username:  username,
		Timestamp: time.Now().Unix(),
	})
}

// NewMissionTransitionEvent creates a mission transition event
func NewMissionTransitionEvent(p MissionTransitionPayloadV1) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return newEvent(MissionTransitioned, p)
}

// NewItemUsedEvent creates an item use event
func NewItemUsedEvent(userID, itemID, itemFunc, requestID string, effects int) Event {
	return newEvent(ItemUsed, ItemUsedPayloadV1{
		UserID:    userID,
		ItemID:    itemID,
		ItemFunc:  itemFunc,
		RequestID: requestID,
		Effects:   effects,
		Timestamp: time.Now().Unix(),
	})
}

// NewItemCraftedEvent creates a crafting event
func NewItemCraftedEvent(userID, itemID, resultID string, consumed int) Event {
	return newEvent(ItemCrafted, ItemCraftedPayloadV1{
		UserID:    userID,
		ItemID:    itemID,
		ResultID:  resultID,
		Consumed:  consumed,
		Timestamp: time.Now().Unix(),
	})
}

// NewDropsResolvedEvent creates a drop resolution event
func NewDropsResolvedEvent(userID, source string, difficulty int, itemIDs []string) Event {
	return newEvent(DropsResolved, DropsResolvedPayloadV1{
		UserID:     userID,
		Source:     source,
		Difficulty: difficulty,
		ItemIDs:    itemIDs,
		Timestamp:  time.Now().Unix(),
	})
}

// NewEncounterEvent creates an encounter outcome event
func NewEncounterEvent(userID, encounter string, success bool, scoreGained int) Event {
	return newEvent(EncounterTriggered, EncounterPayloadV1{
		UserID:      userID,
		Encounter:   encounter,
		Success:     success,
		ScoreGained: scoreGained,
		Timestamp:   time.Now().Unix(),
	})
}

// NewWordleFinishedEvent creates a minigame result event
func NewWordleFinishedEvent(userID, taskID string, won bool, attempts int) Event {
	return newEvent(WordleFinished, WordleFinishedPayloadV1{
		UserID:    userID,
		TaskID:    taskID,
		Won:       won,
		Attempts:  attempts,
		Timestamp: time.Now().Unix(),
	})
}

func newEvent(t Type, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}
