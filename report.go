package tracker

import (
	"fmt"

	"github.com/etnz/tracker/date"
)

// Report gathers everything derived from a ledger.
type Report struct {
	Trades      []Trade         `json:"trades"`
	Holdings    []Holding       `json:"holdings"`
	Metrics     Metrics         `json:"metrics"`
	Timeline    []TimelinePoint `json:"timeline"`
	Allocations []Allocation    `json:"allocations"`
}

// NewReport derives holdings, metrics, timeline and allocations from trades.
func NewReport(trades []Trade) *Report {
	holdings := Aggregate(trades)
	return &Report{
		Trades:      trades,
		Holdings:    holdings,
		Metrics:     Summarize(holdings),
		Timeline:    BuildTimeline(trades),
		Allocations: Allocations(holdings),
	}
}

// Analyze parses a CSV ledger, keeps the trades within r and reports on them.
func (p Parser) Analyze(text string, r date.Range) (*Report, error) {
	trades, err := p.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse ledger: %w", err)
	}
	return NewReport(FilterRange(trades, r)), nil
}
