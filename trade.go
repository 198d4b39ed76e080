package tracker

import (
	"strings"

	"github.com/etnz/tracker/date"
)

// Trade is a single buy (positive shares) or sell (negative shares) read from the ledger.
type Trade struct {
	Symbol string   `json:"symbol"`
	Shares Quantity `json:"shares"`
	Price  Money    `json:"price"`
	// Date as written in the ledger, usually YYYY-MM-DD.
	Date string `json:"date"`
}

// NewTrade creates a trade, the symbol is normalized to upper case.
func NewTrade(symbol string, shares Quantity, price Money, day string) Trade {
	return Trade{
		Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
		Shares: shares,
		Price:  price,
		Date:   strings.TrimSpace(day),
	}
}

// dayKey is the ordering key of a ledger date.
type dayKey struct {
	on    date.Date
	valid bool
	raw   string
}

func keyOf(day string) dayKey {
	on, err := date.Parse(day)
	return dayKey{on: on, valid: err == nil, raw: day}
}

// compare orders valid dates chronologically, then invalid ones lexicographically.
// The same day written differently compares equal.
func (k dayKey) compare(o dayKey) int {
	switch {
	case k.valid && o.valid:
		return k.on.Compare(o.on)
	case k.valid:
		return -1
	case o.valid:
		return 1
	}
	return strings.Compare(k.raw, o.raw)
}

// CompareDates compares two ledger dates.
//
// Dates that parse are compared chronologically, they all come before dates
// that do not parse, which are compared as text.
func CompareDates(a, b string) int { return keyOf(a).compare(keyOf(b)) }

// FilterRange returns the trades dated within r, boundaries included.
//
// A zero bound leaves its side open, so a range with a single bound still
// filters on that bound. The web tracker this replaces only filtered when
// both bounds were set. Trades whose date cannot be parsed are kept only
// when r is open.
func FilterRange(trades []Trade, r date.Range) []Trade {
	if r.IsOpen() {
		return trades
	}
	filtered := make([]Trade, 0, len(trades))
	for _, t := range trades {
		k := keyOf(t.Date)
		if k.valid && r.Contains(k.on) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// latestPrices returns, for each symbol, the price of its most recent trade.
// On a tie for the latest date, the first trade in input order wins.
func latestPrices(trades []Trade) map[string]Money {
	prices := make(map[string]Money)
	latest := make(map[string]dayKey)
	for _, t := range trades {
		k := keyOf(t.Date)
		if l, exists := latest[t.Symbol]; exists && k.compare(l) <= 0 {
			continue
		}
		latest[t.Symbol] = k
		prices[t.Symbol] = t.Price
	}
	return prices
}
