package wordle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

const (
	c = LetterCorrect
	w = LetterWrongPosition
	n = LetterNotInWord
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		guess string
		word  string
		want  []LetterResult
	}{
		{"exact", "APPLE", "APPLE", []LetterResult{c, c, c, c, c}},
		{"no overlap", "TIGER", "SANDY", []LetterResult{n, n, n, n, n}},
		{"anagram", "PAPLE", "APPLE", []LetterResult{w, w, c, c, c}},
		{"letter already matched exactly", "EERIE", "HOUSE", []LetterResult{n, n, n, n, c}},
		{"exact match consumes letter first", "LLAMA", "HELLO", []LetterResult{w, w, n, n, n}},
		{"extra copies marked absent", "PPPPP", "APPLE", []LetterResult{n, c, c, n, n}},
		{"mixed", "CHAIR", "CHARM", []LetterResult{c, c, c, n, w}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.guess, tt.word))
		})
	}
}

func TestNormalizeGuess(t *testing.T) {
	g, err := NormalizeGuess("  tiger ")
	require.NoError(t, err)
	assert.Equal(t, "TIGER", g)

	for _, bad := range []string{"", "TIG", "TIGERS", "TIG3R", "TIGÉR"} {
		_, err := NormalizeGuess(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidGuess, bad)
	}
}

func TestGame_WinRevealsWord(t *testing.T) {
	g := NewGame("u1", "t1", "house", 6, time.Now())
	assert.Equal(t, "HOUSE", g.Word)
	assert.Empty(t, g.View().Word)

	_, err := g.Guess("mouse")
	require.NoError(t, err)
	assert.Equal(t, StatusPlaying, g.Status)

	a, err := g.Guess("HOUSE")
	require.NoError(t, err)
	assert.Equal(t, []LetterResult{c, c, c, c, c}, a.Result)
	assert.Equal(t, StatusWon, g.Status)

	v := g.View()
	assert.Equal(t, "HOUSE", v.Word)
	assert.Equal(t, 4, v.Remaining)

	_, err = g.Guess("HOUSE")
	assert.ErrorIs(t, err, domain.ErrGameOver)
}

func TestGame_LoseAfterMaxAttempts(t *testing.T) {
	g := NewGame("u1", "t1", "APPLE", 2, time.Now())

	_, err := g.Guess("TIGER")
	require.NoError(t, err)
	_, err = g.Guess("CHAIR")
	require.NoError(t, err)

	assert.Equal(t, StatusLost, g.Status)
	assert.Equal(t, 0, g.View().Remaining)
	assert.Equal(t, "APPLE", g.View().Word)
}

func TestGame_InvalidGuessDoesNotCount(t *testing.T) {
	g := NewGame("u1", "t1", "APPLE", 6, time.Now())

	_, err := g.Guess("AP")
	assert.ErrorIs(t, err, domain.ErrInvalidGuess)
	assert.Empty(t, g.Attempts)
}
