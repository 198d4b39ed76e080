package tracker

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// DefaultPageSize is the number of holdings in a page when none is set.
const DefaultPageSize = 10

// SortKey is a holdings table column.
type SortKey string

const (
	SortSymbol       SortKey = "symbol"
	SortShares       SortKey = "shares"
	SortAvgCostBasis SortKey = "avgCostBasis"
	SortCurrentPrice SortKey = "currentPrice"
	SortCurrentValue SortKey = "currentValue"
	SortGainLoss     SortKey = "unrealizedGainLoss"
	SortGainPercent  SortKey = "gainPercent"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortSymbol, SortShares, SortAvgCostBasis, SortCurrentPrice, SortCurrentValue, SortGainLoss, SortGainPercent}

// ParseSortKey parses a sort key, case insensitive. The empty string is the
// empty key that keeps holdings order.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return "", nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", s)
}

// HoldingQuery selects a page of holdings as displayed in a table.
type HoldingQuery struct {
	Search     string  // case insensitive substring of the symbol
	SortBy     SortKey // empty keeps holdings order
	Descending bool
	Page       int // 1-indexed, clamped to the available pages
	PageSize   int // DefaultPageSize when not positive
}

// HoldingPage is the result of a HoldingQuery.
type HoldingPage struct {
	Holdings []Holding `json:"holdings"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Total    int       `json:"total"` // number of holdings matching the search
}

// Apply filters, sorts and paginates holdings. holdings is not modified.
func (q HoldingQuery) Apply(holdings []Holding) HoldingPage {
	search := strings.ToLower(q.Search)
	matching := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		if strings.Contains(strings.ToLower(h.Symbol), search) {
			matching = append(matching, h)
		}
	}

	if q.SortBy != "" {
		slices.SortStableFunc(matching, func(a, b Holding) int {
			c := compareHoldings(q.SortBy, a, b)
			if q.Descending {
				return -c
			}
			return c
		})
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(matching) + size - 1) / size
	page := max(1, min(q.Page, pages))
	start := min((page-1)*size, len(matching))
	end := min(start+size, len(matching))
	return HoldingPage{
		Holdings: matching[start:end],
		Page:     page,
		Pages:    pages,
		Total:    len(matching),
	}
}

func compareHoldings(key SortKey, a, b Holding) int {
	switch key {
	case SortSymbol:
		return strings.Compare(a.Symbol, b.Symbol)
	case SortShares:
		return a.Shares.Compare(b.Shares)
	case SortAvgCostBasis:
		return a.AvgCostBasis.Compare(b.AvgCostBasis)
	case SortCurrentPrice:
		return a.CurrentPrice.Compare(b.CurrentPrice)
	case SortCurrentValue:
		return a.CurrentValue.Compare(b.CurrentValue)
	case SortGainLoss:
		return a.UnrealizedGainLoss.Compare(b.UnrealizedGainLoss)
	case SortGainPercent:
		// cmp.Compare orders NaN first.
		return cmp.Compare(a.GainPercent, b.GainPercent)
	default:
		return 0
	}
}
