package obj

import "github.com/milk9111/littlehelpers/common"

// Health is a value kept inside [Min, Max].
type Health struct {
	Min, Max float64
	Current  float64
}

func NewHealth(min, max float64) Health {
	if max < min {
		max = min
	}
	return Health{Min: min, Max: max, Current: max}
}

// Set assigns v clamped to the range.
func (h *Health) Set(v float64) {
	h.Current = common.Clamp(common.Finite(v), h.Min, h.Max)
}

// Reduce subtracts amount and clamps. Non-finite amounts are ignored.
func (h *Health) Reduce(amount float64) {
	h.Set(h.Current - common.Finite(amount))
}

// Fraction is Current within the range, in [0, 1].
func (h *Health) Fraction() float64 {
	if h.Max == h.Min {
		return 0
	}
	return (h.Current - h.Min) / (h.Max - h.Min)
}
