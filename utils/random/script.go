package random

import "sync"

// Script is a Source that replays a fixed sequence of values, ignoring the
// requested range. Once the sequence is exhausted it returns the midpoint of
// the requested range. It is meant for pinning model outcomes.
type Script struct {
	values []float64
	m      sync.Mutex
}

// NewScript returns a Script replaying values in order.
func NewScript(values ...float64) *Script {
	return &Script{values: values}
}

// Uniform returns the next scripted value.
func (s *Script) Uniform(min, max float64) float64 {
	s.m.Lock()
	defer s.m.Unlock()
	if len(s.values) == 0 {
		return (min + max) / 2
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

// Remaining returns the amount of values not yet replayed.
func (s *Script) Remaining() int {
	s.m.Lock()
	defer s.m.Unlock()
	return len(s.values)
}
