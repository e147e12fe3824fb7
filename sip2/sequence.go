package sip2

// Sequence produces the rotating single-digit AY sequence token.
//
// One Sequence exists per logical connection and is owned exclusively by the
// connection's exchange loop; it is not safe for concurrent use and is never
// reset mid-connection.
type Sequence struct {
	n int
}

// NewSequence creates a Sequence whose first Next call returns 0.
func NewSequence() *Sequence {
	return &Sequence{n: -1}
}

// Next advances the counter and returns the new digit, wrapping from 9 back
// to 0. Eleven consecutive calls on a fresh Sequence yield 0,1,...,9,0.
func (s *Sequence) Next() int {
	s.n++
	if s.n > 9 {
		s.n = 0
	}

	return s.n
}
