package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgUsernameTaken  = "username already taken"

	// Catalog errors
	ErrMsgTaskNotFound      = "task not found"
	ErrMsgItemNotFound      = "item not found"
	ErrMsgEventNotFound     = "event not found"
	ErrMsgOptionNotFound    = "event option not found"
	ErrMsgStationNotFound   = "supply station not found"
	ErrMsgInvalidDifficulty = "invalid difficulty"

	// Mission errors
	ErrMsgMissionNotFound  = "mission not found"
	ErrMsgInvalidState     = "invalid mission state"
	ErrMsgMissionSlotsFull = "mission slots are full"

	// Backpack errors
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgNoStock              = "no stock"

	// Crafting errors
	ErrMsgNotCraftable = "item cannot be crafted"

	// Item use errors
	ErrMsgDuplicateRequest      = "duplicate request"
	ErrMsgKeyUseNotAllowed      = "keys can only be used to open treasure chests"
	ErrMsgItemFuncNotRegistered = "item function not registered"

	// Minigame errors
	ErrMsgGameNotFound = "game not found"
	ErrMsgGameOver     = "game is already over"
	ErrMsgInvalidGuess = "invalid guess"

	// Database/System errors
	ErrMsgVersionConflict = "concurrent modification"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrUsernameTaken  = errors.New(ErrMsgUsernameTaken)

	ErrTaskNotFound      = errors.New(ErrMsgTaskNotFound)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrEventNotFound     = errors.New(ErrMsgEventNotFound)
	ErrOptionNotFound    = errors.New(ErrMsgOptionNotFound)
	ErrStationNotFound   = errors.New(ErrMsgStationNotFound)
	ErrInvalidDifficulty = errors.New(ErrMsgInvalidDifficulty)

	ErrMissionNotFound  = errors.New(ErrMsgMissionNotFound)
	ErrInvalidState     = errors.New(ErrMsgInvalidState)
	ErrMissionSlotsFull = errors.New(ErrMsgMissionSlotsFull)

	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrNoStock              = errors.New(ErrMsgNoStock)

	ErrNotCraftable = errors.New(ErrMsgNotCraftable)

	ErrDuplicateRequest      = errors.New(ErrMsgDuplicateRequest)
	ErrKeyUseNotAllowed      = errors.New(ErrMsgKeyUseNotAllowed)
	ErrItemFuncNotRegistered = errors.New(ErrMsgItemFuncNotRegistered)

	ErrGameNotFound = errors.New(ErrMsgGameNotFound)
	ErrGameOver     = errors.New(ErrMsgGameOver)
	ErrInvalidGuess = errors.New(ErrMsgInvalidGuess)

	ErrVersionConflict = errors.New(ErrMsgVersionConflict)

	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// InvalidStateError reports a mission transition whose guard failed.
// It matches ErrInvalidState with errors.Is.
type InvalidStateError struct {
	TaskID string
	Action string
	State  MissionState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s mission %s in state %q", ErrMsgInvalidState, e.Action, e.TaskID, e.State)
}

// Is implements errors.Is matching
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
