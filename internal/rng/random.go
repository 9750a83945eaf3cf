// Package rng provides the deterministic random stream every simulation
// subsystem draws from. A Stream is a pure function of its seed and draw
// counter, so a world advanced twice from the same seed produces identical
// draws. Fork derives an independent child stream from the parent's current
// counter; the turn scheduler forks once per subsystem call in source order.
package rng

// Stream is a seeded splitmix64 generator.
type Stream struct {
	state uint64
	draws uint64
}

// New creates a stream from a root seed.
func New(seed int64) *Stream {
	return &Stream{state: mix64(uint64(seed))}
}

// NewTurn derives the root stream for one turn from the world seed and the
// turn number. Turn N always yields the same stream regardless of how the
// previous turns consumed their streams.
func NewTurn(seed int64, turn int) *Stream {
	h := uint64(seed) ^ (uint64(turn)+1)*0x9E3779B97F4A7C15
	return &Stream{state: mix64(h)}
}

// Fork returns a new independent stream derived from the parent's current
// state and draw counter. The parent advances by one draw.
func (s *Stream) Fork() *Stream {
	return &Stream{state: mix64(s.next64())}
}

// Draws reports how many values have been consumed, forks included.
func (s *Stream) Draws() uint64 { return s.draws }

func (s *Stream) next64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	s.draws++
	return mix64(s.state)
}

func mix64(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}

// Next returns a float64 in [0, 1) using 53 bits of state.
func (s *Stream) Next() float64 {
	return float64(s.next64()>>11) / float64(1<<53)
}

// NextInt returns an integer in [lo, hi] inclusive.
func (s *Stream) NextInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo + 1)
	return lo + int(s.next64()%span)
}

// NextFloat returns a float64 in [lo, hi).
func (s *Stream) NextFloat(lo, hi float64) float64 {
	return lo + s.Next()*(hi-lo)
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.Next() < p
}

// Pick returns a uniformly chosen element. Empty input returns the zero value.
func Pick[T any](s *Stream, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.NextInt(0, len(items)-1)]
}

// WeightedPick chooses an element proportional to its weight. Negative
// weights are treated as zero. The draw walks the list in order subtracting
// each weight; float edge cases fall through to the last element, which is
// part of the selection contract.
func WeightedPick[T any](s *Stream, items []T, weights []float64) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return items[len(items)-1]
	}
	roll := s.Next() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll <= 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}
