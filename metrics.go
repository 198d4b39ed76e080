package tracker

import "math"

// Performer is a symbol and its gain percentage.
type Performer struct {
	Symbol string  `json:"symbol"`
	Gain   Percent `json:"gain"`
}

// Metrics summarizes a set of holdings.
type Metrics struct {
	TotalValue Money `json:"totalValue"`
	// TopPerformer and WorstPerformer are nil when no holding has a defined gain percentage.
	TopPerformer   *Performer `json:"topPerformer"`
	WorstPerformer *Performer `json:"worstPerformer"`
	UniqueSymbols  int        `json:"uniqueSymbols"`
}

// Summarize computes the portfolio metrics of holdings.
//
// On equal gain percentages the first holding keeps the title. Holdings with
// an undefined gain percentage (zero cost) are not candidates.
func Summarize(holdings []Holding) Metrics {
	m := Metrics{UniqueSymbols: len(holdings)}
	top, worst := Percent(math.Inf(-1)), Percent(math.Inf(1))
	for _, h := range holdings {
		m.TotalValue = m.TotalValue.Add(h.CurrentValue)

		gain := h.GainPercent
		if !gain.IsFinite() {
			continue
		}
		if gain > top {
			top = gain
			m.TopPerformer = &Performer{Symbol: h.Symbol, Gain: gain}
		}
		if gain < worst {
			worst = gain
			m.WorstPerformer = &Performer{Symbol: h.Symbol, Gain: gain}
		}
	}
	return m
}
