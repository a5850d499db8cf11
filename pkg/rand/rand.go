package rand

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

// Source is the set of draws the generator needs. Implementations need not
// be safe for concurrent use.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntRange returns an integer in [lo, hi], both inclusive.
	IntRange(lo, hi int) int
	// StepRange returns an element of the progression lo, lo+step, ... <= hi.
	StepRange(lo, hi, step int) int
	// Weighted returns the index of the chosen weight. Zero weights are never
	// chosen; -1 is returned if every weight is zero.
	Weighted(weights []int) int
}

// Rand is a PCG32 backed Source.
type Rand struct {
	r *pcg.PCG32
}

const pcgSequence = 0xda3e39cb94b95bdb

// New returns a Rand producing a reproducible stream for the given seed.
func New(seed int64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	r.Seed(seed)
	return r
}

// NewFromTime returns a Rand seeded from the wall clock.
func NewFromTime() *Rand {
	return New(time.Now().UnixNano())
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), pcgSequence)
}

// Intn returns a value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func (r *Rand) StepRange(lo, hi, step int) int {
	if step <= 1 {
		return r.IntRange(lo, hi)
	}
	if hi <= lo {
		return lo
	}
	n := (hi-lo)/step + 1
	return lo + step*r.Intn(n)
}

// Weighted reservoir sampling.
func (r *Rand) Weighted(weights []int) int {
	idx := -1
	sumWt := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		sumWt += w
		p := float64(w) / float64(sumWt)
		if r.Float64() < p {
			idx = i
		}
	}
	return idx
}

///////////////////////////////////////////////////////////////////////////
// Helpers over any Source

// Sign returns -1 or 1 with equal probability.
func Sign(src Source) int {
	if src.IntRange(0, 1) == 0 {
		return -1
	}
	return 1
}

// Uniform returns one of the given values with equal probability.
func Uniform[T any](src Source, values ...T) T {
	return values[src.IntRange(0, len(values)-1)]
}

// Option is a labeled value with a relative weight.
type Option[T any] struct {
	Value  T
	Weight int
}

// Choose makes a weighted choice among options. ok is false when no option
// carries a positive weight.
func Choose[T any](src Source, options []Option[T]) (T, bool) {
	weights := make([]int, len(options))
	for i, o := range options {
		weights[i] = o.Weight
	}
	idx := src.Weighted(weights)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return options[idx].Value, true
}
