package tracker

import (
	"slices"
	"strings"
)

// TimelinePoint is the portfolio value at the end of a trade date.
type TimelinePoint struct {
	Date  string `json:"date"`
	Value Money  `json:"value"`
}

// running is the replayed position of a symbol.
type running struct {
	shares  Quantity
	avgCost Money
}

// BuildTimeline replays trades in chronological order and returns the
// portfolio value after each distinct trade date, sorted by date.
//
// Every symbol is valued at its most recent price in the whole trade list,
// not at the price known on that date. Trades on the same date are replayed
// in input order and the date keeps the value after the last one.
func BuildTimeline(trades []Trade) []TimelinePoint {
	keys := make(map[string]dayKey)
	for _, t := range trades {
		if _, exists := keys[t.Date]; !exists {
			keys[t.Date] = keyOf(t.Date)
		}
	}

	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b Trade) int {
		return keys[a.Date].compare(keys[b.Date])
	})

	prices := latestPrices(trades)
	held := newHeld()
	values := make(map[string]Money)
	for _, t := range sorted {
		existing := held.index[t.Symbol]
		shares := existing.shares.Add(t.Shares)
		if shares.IsPositive() {
			invested := existing.avgCost.Mul(existing.shares).Add(t.Price.Mul(t.Shares))
			held.set(t.Symbol, running{shares: shares, avgCost: invested.Div(shares)})
		} else {
			held.remove(t.Symbol)
		}

		var total Money
		for _, symbol := range held.symbols {
			total = total.Add(prices[symbol].Mul(held.index[symbol].shares))
		}
		values[t.Date] = total
	}

	points := make([]TimelinePoint, 0, len(values))
	for day, value := range values {
		points = append(points, TimelinePoint{Date: day, Value: value})
	}
	slices.SortFunc(points, func(a, b TimelinePoint) int {
		if c := keys[a.Date].compare(keys[b.Date]); c != 0 {
			return c
		}
		return strings.Compare(a.Date, b.Date)
	})
	return points
}

// held is the ordered set of symbols currently held during a replay.
type held struct {
	symbols []string
	index   map[string]running
}

func newHeld() *held { return &held{index: make(map[string]running)} }

func (h *held) set(symbol string, r running) {
	if _, exists := h.index[symbol]; !exists {
		h.symbols = append(h.symbols, symbol)
	}
	h.index[symbol] = r
}

func (h *held) remove(symbol string) {
	if _, exists := h.index[symbol]; !exists {
		return
	}
	delete(h.index, symbol)
	h.symbols = slices.DeleteFunc(h.symbols, func(s string) bool { return s == symbol })
}
