package session

import "math/rand/v2"

// sampler hands out every index in [0, n) exactly once, in uniformly random
// order. It rejection-samples against the set of already-drawn indices rather
// than pre-shuffling; retries grow as the undrawn set shrinks, which is fine
// for the small working sets a subject tier holds.
type sampler struct {
	n     int
	drawn map[int]bool
	intn  func(int) int
}

func newSampler(n int, intn func(int) int) *sampler {
	if intn == nil {
		intn = rand.IntN
	}
	return &sampler{n: n, drawn: make(map[int]bool, n), intn: intn}
}

// next returns an undrawn index, or false once all n indices have been drawn.
func (s *sampler) next() (int, bool) {
	if len(s.drawn) == s.n {
		return 0, false
	}
	for {
		i := s.intn(s.n)
		if s.drawn[i] {
			continue // already practiced, redraw
		}
		s.drawn[i] = true
		return i, true
	}
}
