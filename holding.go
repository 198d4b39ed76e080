package tracker

// Holding is the current position in a symbol, derived from all its trades.
type Holding struct {
	Symbol string   `json:"symbol"`
	Shares Quantity `json:"shares"`
	// Cost is the total invested, sells included: Σ shares×price.
	Cost         Money `json:"cost"`
	AvgCostBasis Money `json:"avgCostBasis"`
	// CurrentPrice is the price of the most recent trade of the symbol.
	CurrentPrice       Money `json:"currentPrice"`
	CurrentValue       Money `json:"currentValue"`
	UnrealizedGainLoss Money `json:"unrealizedGainLoss"`
	// GainPercent is UnrealizedGainLoss/Cost, NaN when the cost is zero.
	GainPercent Percent `json:"gainPercent"`
}

// position accumulates the trades of a single symbol.
type position struct {
	shares Quantity
	cost   Money
}

// positions is a symbol → position association that iterates in the order
// symbols were first seen.
type positions struct {
	symbols []string
	index   map[string]*position
}

func newPositions() *positions {
	return &positions{index: make(map[string]*position)}
}

func (p *positions) get(symbol string) *position {
	pos, exists := p.index[symbol]
	if !exists {
		pos = &position{}
		p.index[symbol] = pos
		p.symbols = append(p.symbols, symbol)
	}
	return pos
}

// Aggregate folds trades into holdings.
//
// Holdings are returned in the order their symbol first appears in trades.
// Symbols whose net shares are zero or negative are dropped: short positions
// are not supported.
func Aggregate(trades []Trade) []Holding {
	acc := newPositions()
	for _, t := range trades {
		pos := acc.get(t.Symbol)
		pos.shares = pos.shares.Add(t.Shares)
		pos.cost = pos.cost.Add(t.Price.Mul(t.Shares))
	}

	prices := latestPrices(trades)
	holdings := make([]Holding, 0, len(acc.symbols))
	for _, symbol := range acc.symbols {
		pos := acc.index[symbol]
		if !pos.shares.IsPositive() {
			continue
		}
		price := prices[symbol]
		value := price.Mul(pos.shares)
		gain := value.Sub(pos.cost)
		holdings = append(holdings, Holding{
			Symbol:             symbol,
			Shares:             pos.shares,
			Cost:               pos.cost,
			AvgCostBasis:       pos.cost.Div(pos.shares),
			CurrentPrice:       price,
			CurrentValue:       value,
			UnrealizedGainLoss: gain,
			GainPercent:        gain.Ratio(pos.cost),
		})
	}
	return holdings
}
