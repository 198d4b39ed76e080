package tracker

// Allocation is the share of the portfolio value held in a symbol.
type Allocation struct {
	Symbol string  `json:"symbol"`
	Value  Money   `json:"value"`
	Weight Percent `json:"weight"`
}

// Allocations returns the weight of every holding in the total portfolio value,
// in holdings order. Weights are 0 when the portfolio is worth nothing.
func Allocations(holdings []Holding) []Allocation {
	var total Money
	for _, h := range holdings {
		total = total.Add(h.CurrentValue)
	}
	allocations := make([]Allocation, 0, len(holdings))
	for _, h := range holdings {
		weight := Percent(0)
		if !total.IsZero() {
			weight = h.CurrentValue.Ratio(total)
		}
		allocations = append(allocations, Allocation{Symbol: h.Symbol, Value: h.CurrentValue, Weight: weight})
	}
	return allocations
}
