package state

import "strconv"

// IDSource produces unique, monotonically ordered line identifiers.
// Implementations need not be wall-clock based; a deterministic source
// keeps tests stable and survives rapid successive calls without
// collisions.
type IDSource interface {
	Next() string
}

// Sequence is a simple monotonic counter id source.
type Sequence struct {
	prefix string
	next   int
}

// NewSequence returns a Sequence whose ids carry the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	s.next++
	return s.prefix + strconv.Itoa(s.next)
}
