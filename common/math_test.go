package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumWithMagnitudeClamp(t *testing.T) {
	cases := []struct {
		name            string
		v, delta, limit float64
		want            float64
	}{
		{"within", 1, 1, 5, 2},
		{"positive_overflow", 4, 3, 5, 5},
		{"negative_overflow", -4, -3, 5, -5},
		{"negative_limit_is_magnitude", -4, -3, -5, -5},
		{"crossing_zero", 2, -3, 5, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SumWithMagnitudeClamp(c.v, c.delta, c.limit))
		})
	}
}

func TestFinite(t *testing.T) {
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 0.0, Finite(math.Inf(1)))
	assert.Equal(t, 0.0, Finite(math.Inf(-1)))
	assert.Equal(t, 1.5, Finite(1.5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 50))
	assert.Equal(t, 50.0, Clamp(51, 0, 50))
	assert.Equal(t, 3, ClampInt(7, 0, 3))
	assert.Equal(t, 2.0, Lerp(0, 4, 0.5))
}
