package tracker

import (
	"testing"
)

func holding(symbol string, value float64, gain Percent) Holding {
	return Holding{Symbol: symbol, CurrentValue: INR(value), GainPercent: gain}
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name      string
		holdings  []Holding
		wantTotal Money
		wantTop   *Performer
		wantWorst *Performer
	}{
		{
			name: "extremes",
			holdings: []Holding{
				holding("AAPL", 1000, 10),
				holding("MSFT", 500, -5),
				holding("GOOG", 250, 30),
			},
			wantTotal: INR(1750),
			wantTop:   &Performer{Symbol: "GOOG", Gain: 30},
			wantWorst: &Performer{Symbol: "MSFT", Gain: -5},
		},
		{
			name: "ties keep the first holding",
			holdings: []Holding{
				holding("AAPL", 100, 12.5),
				holding("MSFT", 100, 12.5),
			},
			wantTotal: INR(200),
			wantTop:   &Performer{Symbol: "AAPL", Gain: 12.5},
			wantWorst: &Performer{Symbol: "AAPL", Gain: 12.5},
		},
		{
			name: "undefined gains are skipped",
			holdings: []Holding{
				holding("GIFT", 100, NaN()),
				holding("MSFT", 100, -1),
			},
			wantTotal: INR(200),
			wantTop:   &Performer{Symbol: "MSFT", Gain: -1},
			wantWorst: &Performer{Symbol: "MSFT", Gain: -1},
		},
		{
			name:      "only undefined gains",
			holdings:  []Holding{holding("GIFT", 100, NaN())},
			wantTotal: INR(100),
		},
		{
			name:      "empty",
			holdings:  nil,
			wantTotal: Money{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := Summarize(tc.holdings)
			if !m.TotalValue.Equal(tc.wantTotal) {
				t.Errorf("TotalValue = %v, want %v", m.TotalValue, tc.wantTotal)
			}
			if m.UniqueSymbols != len(tc.holdings) {
				t.Errorf("UniqueSymbols = %d, want %d", m.UniqueSymbols, len(tc.holdings))
			}
			checkPerformer(t, "TopPerformer", m.TopPerformer, tc.wantTop)
			checkPerformer(t, "WorstPerformer", m.WorstPerformer, tc.wantWorst)
		})
	}
}

func checkPerformer(t *testing.T, name string, got, want *Performer) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", name, got, want)
	case got.Symbol != want.Symbol || !got.Gain.Equal(want.Gain):
		t.Errorf("%s = %+v, want %+v", name, *got, *want)
	}
}
