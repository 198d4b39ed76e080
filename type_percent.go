package tracker

import (
	"encoding/json"
	"fmt"
	"math"
)

// Percent is a percentage, 12.5 means 12.5%.
//
// It is a float so that undefined ratios (division by a zero cost) stay
// representable as NaN.
type Percent float64

// NaN returns the undefined percentage.
func NaN() Percent { return Percent(math.NaN()) }

// IsFinite returns false for NaN and infinities.
func (p Percent) IsFinite() bool {
	f := float64(p)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p Percent) Equal(q Percent) bool {
	if !p.IsFinite() || !q.IsFinite() {
		return math.IsNaN(float64(p)) && math.IsNaN(float64(q)) || p == q
	}
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if math.IsNaN(float64(p)) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	if math.IsNaN(float64(p)) {
		return "n/a"
	}
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// MarshalJSON encodes non finite percentages as null.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f == nil {
		*p = NaN()
		return nil
	}
	*p = Percent(*f)
	return nil
}
