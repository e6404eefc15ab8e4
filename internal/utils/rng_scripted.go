package utils

import "sync"

// ScriptedRNG replays a fixed sequence of draws, wrapping around.
// Each value is reduced modulo n so scripts stay valid for any range.
type ScriptedRNG struct {
	mu     sync.Mutex
	Values []int
	pos    int
}

// NewScriptedRNG returns an RNG that yields values in order.
func NewScriptedRNG(values ...int) *ScriptedRNG {
	return &ScriptedRNG{Values: values}
}

func (s *ScriptedRNG) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}
