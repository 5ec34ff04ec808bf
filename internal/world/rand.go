package world

import "math/rand"

// Rand is the random source devastation draws from.
type Rand interface {
	// Value returns a uniform float in [0,1).
	Value() float64
	// RangeInclusive returns a uniform int in [min,max].
	RangeInclusive(min, max int) int
}

// SeededRand is a Rand backed by math/rand. Single goroutine only.
type SeededRand struct {
	r *rand.Rand
}

func NewRand(seed int64) *SeededRand {
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededRand) Value() float64 { return s.r.Float64() }

func (s *SeededRand) RangeInclusive(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}
