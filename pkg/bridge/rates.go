// ABOUTME: Supported sample rate table
// ABOUTME: Maps any requested rate to the nearest rate the sink can play
package bridge

import "fmt"

// DefaultRates are the rates a typical hardware sink accepts without resampling
var DefaultRates = []int{5512, 8000, 11025, 16000, 22050, 32000, 44100, 48000}

// RateTable is a validated, strictly increasing list of sample rates
type RateTable struct {
	rates []int
}

// NewRateTable validates rates and returns a table over a copy of them
func NewRateTable(rates []int) (*RateTable, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidRateTable)
	}
	for i, r := range rates {
		if r <= 0 {
			return nil, fmt.Errorf("%w: rate %d is not positive", ErrInvalidRateTable, r)
		}
		if i > 0 && r <= rates[i-1] {
			return nil, fmt.Errorf("%w: %d does not follow %d", ErrInvalidRateTable, r, rates[i-1])
		}
	}

	t := &RateTable{rates: make([]int, len(rates))}
	copy(t.rates, rates)
	return t, nil
}

// DefaultRateTable returns a table over DefaultRates
func DefaultRateTable() *RateTable {
	t, _ := NewRateTable(DefaultRates)
	return t
}

// Normalize returns the table entry nearest to rate. A rate exactly on the
// midpoint between two entries maps to the lower one; rates above the last
// midpoint map to the maximum entry.
func (t *RateTable) Normalize(rate int) int {
	for i := 0; i+1 < len(t.rates); i++ {
		low, high := t.rates[i], t.rates[i+1]
		if rate <= (low+high)/2 {
			return low
		}
	}
	return t.Max()
}

// Contains reports whether rate is exactly supported
func (t *RateTable) Contains(rate int) bool {
	return t.Normalize(rate) == rate
}

// Max returns the highest supported rate
func (t *RateTable) Max() int {
	return t.rates[len(t.rates)-1]
}

// Rates returns a copy of the table
func (t *RateTable) Rates() []int {
	out := make([]int, len(t.rates))
	copy(out, t.rates)
	return out
}
