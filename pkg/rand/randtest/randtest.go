// Package randtest provides deterministic rand.Source implementations for
// tests.
package randtest

// Min always returns the lower bound of every draw.
type Min struct{}

func (Min) Float64() float64 { return 0 }

func (Min) IntRange(lo, hi int) int { return lo }

func (Min) StepRange(lo, hi, step int) int { return lo }

func (Min) Weighted(weights []int) int {
	for i, w := range weights {
		if w > 0 {
			return i
		}
	}
	return -1
}

// Max always returns the upper bound of every draw.
type Max struct{}

func (Max) Float64() float64 { return 0.999999 }

func (Max) IntRange(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return hi
}

func (Max) StepRange(lo, hi, step int) int {
	if hi <= lo {
		return lo
	}
	if step <= 1 {
		return hi
	}
	return lo + step*((hi-lo)/step)
}

func (Max) Weighted(weights []int) int {
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
