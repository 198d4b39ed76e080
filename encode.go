package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

// EncodeTrades writes trades as a canonical CSV ledger: the required columns
// in their standard order, trades in chronological order, and amounts in
// their shortest exact form.
//
// Parsing the output yields the same trades in chronological order, unless a
// field contains a double quote.
func EncodeTrades(w io.Writer, trades []Trade) error {
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b Trade) int { return CompareDates(a.Date, b.Date) })

	cw := csv.NewWriter(w)
	if err := cw.Write(RequiredColumns); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for _, t := range sorted {
		record := []string{t.Symbol, t.Shares.String(), t.Price.Decimal().String(), t.Date}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write trade %s on %s: %w", t.Symbol, t.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
