package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRangeInclusive(t *testing.T) {
	r := New(42)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := r.IntRange(3, 7)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 7)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "every value in [3,7] should be drawn")
}

func TestStepRange(t *testing.T) {
	tests := []struct {
		name         string
		lo, hi, step int
		want         []int
	}{
		{"cruise speeds", 40, 65, 5, []int{40, 45, 50, 55, 60, 65}},
		{"hi not on stride", 100, 125, 10, []int{100, 110, 120}},
		{"unit step", 1, 3, 1, []int{1, 2, 3}},
		{"degenerate", 9, 9, 5, []int{9}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(7)
			seen := make(map[int]bool)
			for i := 0; i < 1000; i++ {
				v := r.StepRange(tc.lo, tc.hi, tc.step)
				require.Contains(t, tc.want, v)
				seen[v] = true
			}
			assert.Len(t, seen, len(tc.want))
		})
	}
}

func TestFloat64Range(t *testing.T) {
	r := New(1)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestWeighted(t *testing.T) {
	r := New(99)
	assert.Equal(t, -1, r.Weighted(nil))
	assert.Equal(t, -1, r.Weighted([]int{0, 0}))

	counts := make([]int, 3)
	for i := 0; i < 6000; i++ {
		idx := r.Weighted([]int{3, 0, 1})
		require.NotEqual(t, 1, idx, "zero weight must never be chosen")
		counts[idx]++
	}
	assert.Greater(t, counts[0], counts[2])
}

func TestSeedReproducible(t *testing.T) {
	a, b := New(1234), New(1234)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}

func TestChoose(t *testing.T) {
	r := New(5)
	v, ok := Choose(r, []Option[string]{{"never", 0}, {"always", 2}})
	require.True(t, ok)
	assert.Equal(t, "always", v)

	_, ok = Choose(r, []Option[string]{{"never", 0}})
	assert.False(t, ok)
}

func TestSign(t *testing.T) {
	r := New(3)
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		s := Sign(r)
		require.True(t, s == 1 || s == -1)
		seen[s] = true
	}
	assert.Len(t, seen, 2)
}
