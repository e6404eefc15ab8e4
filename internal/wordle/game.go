// Package wordle implements the five-letter word minigame attached to missions.
package wordle

import (
	"fmt"
	"strings"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// LetterResult is the feedback for one letter of a guess
type LetterResult string

const (
	LetterCorrect       LetterResult = "correct"
	LetterWrongPosition LetterResult = "wrong_position"
	LetterNotInWord     LetterResult = "not_in_word"
)

// Status is the lifecycle of a game
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Attempt is one scored guess
type Attempt struct {
	Guess  string         `json:"guess"`
	Result []LetterResult `json:"result"`
}

// Game is the stored state of one player's game for one mission
type Game struct {
	UserID      string    `json:"userId"`
	TaskID      string    `json:"taskId"`
	Word        string    `json:"word"`
	Attempts    []Attempt `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	Status      Status    `json:"status"`
	StartedAt   time.Time `json:"startedAt"`
}

// View is the client-facing projection; the word is revealed once the game ends
type View struct {
	TaskID      string    `json:"taskId"`
	WordLength  int       `json:"wordLength"`
	Attempts    []Attempt `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	Remaining   int       `json:"remaining"`
	Status      Status    `json:"status"`
	Word        string    `json:"word,omitempty"`
}

// NewGame starts a game for word
func NewGame(userID, taskID, word string, maxAttempts int, now time.Time) *Game {
	return &Game{
		UserID:      userID,
		TaskID:      taskID,
		Word:        strings.ToUpper(word),
		Attempts:    []Attempt{},
		MaxAttempts: maxAttempts,
		Status:      StatusPlaying,
		StartedAt:   now,
	}
}

// View projects the game for clients
func (g *Game) View() View {
	v := View{
		TaskID:      g.TaskID,
		WordLength:  len(g.Word),
		Attempts:    g.Attempts,
		MaxAttempts: g.MaxAttempts,
		Remaining:   max(0, g.MaxAttempts-len(g.Attempts)),
		Status:      g.Status,
	}
	if g.Status != StatusPlaying {
		v.Word = g.Word
	}
	return v
}

// NormalizeGuess upper-cases a guess and checks it is WordLength letters A-Z
func NormalizeGuess(guess string) (string, error) {
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != WordLength {
		return "", fmt.Errorf("%w: guess must be %d letters", domain.ErrInvalidGuess, WordLength)
	}
	for _, r := range guess {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: guess must only contain letters A-Z", domain.ErrInvalidGuess)
		}
	}
	return guess, nil
}

// Guess scores guess and advances the game
func (g *Game) Guess(guess string) (Attempt, error) {
	if g.Status != StatusPlaying {
		return Attempt{}, domain.ErrGameOver
	}
	guess, err := NormalizeGuess(guess)
	if err != nil {
		return Attempt{}, err
	}

	a := Attempt{Guess: guess, Result: Evaluate(guess, g.Word)}
	g.Attempts = append(g.Attempts, a)
	switch {
	case guess == g.Word:
		g.Status = StatusWon
	case len(g.Attempts) >= g.MaxAttempts:
		g.Status = StatusLost
	}
	return a, nil
}

// Evaluate scores guess against word. Exact matches are taken first so a
// repeated letter is only marked misplaced while unmatched copies remain.
func Evaluate(guess, word string) []LetterResult {
	result := make([]LetterResult, len(guess))
	remaining := make(map[byte]int, len(word))

	for i := 0; i < len(guess); i++ {
		if i < len(word) && guess[i] == word[i] {
			result[i] = LetterCorrect
			continue
		}
		if i < len(word) {
			remaining[word[i]]++
		}
	}
	for i := 0; i < len(guess); i++ {
		if result[i] == LetterCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			result[i] = LetterWrongPosition
			remaining[guess[i]]--
			continue
		}
		result[i] = LetterNotInWord
	}
	return result
}
