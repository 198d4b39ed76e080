package tracker

import (
	"fmt"
	"strings"
)

// RequiredColumns are the header columns a ledger must contain, in any order and case.
var RequiredColumns = []string{"symbol", "shares", "price", "date"}

// FormatError reports a ledger that cannot be parsed.
type FormatError struct {
	Row int // 1-indexed line number, the header is row 1. 0 when not row specific.
	Msg string
}

func (e *FormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
	}
	return e.Msg
}

// Parser converts a CSV ledger into trades.
//
// The zero value is ready to use.
type Parser struct {
	// Currency of the prices, DefaultCurrency when empty.
	Currency string
	// OnSkip, when set, is called for every data row ignored because its
	// number of fields does not match the header.
	OnSkip func(row, fields, want int)
}

// ParseTrades parses a CSV ledger with the default Parser.
func ParseTrades(text string) ([]Trade, error) {
	var p Parser
	return p.Parse(text)
}

// Parse converts text into trades, in row order.
//
// The first line is the header, columns are located by name. Rows with a
// different number of fields than the header are skipped. A row whose shares
// or price is not a number aborts the parse with a *FormatError.
func (p Parser) Parse(text string) ([]Trade, error) {
	// spreadsheets export UTF-8 CSV with a byte order mark.
	text = strings.TrimPrefix(strings.TrimSpace(text), "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, &FormatError{Msg: "CSV must have at least a header and one data row"}
	}

	header := splitFields(strings.ToLower(lines[0]))
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, exists := index[h]; !exists {
			index[h] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, exists := index[col]; !exists {
			return nil, &FormatError{Row: 1, Msg: fmt.Sprintf("CSV must include columns: %s", strings.Join(RequiredColumns, ", "))}
		}
	}

	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	trades := make([]Trade, 0, len(lines)-1)
	for i, line := range lines[1:] {
		row := i + 2
		values := splitFields(line)
		if len(values) != len(header) {
			if p.OnSkip != nil {
				p.OnSkip(row, len(values), len(header))
			}
			continue
		}

		symbol := values[index["symbol"]]
		if symbol == "" {
			return nil, &FormatError{Row: row, Msg: "empty symbol"}
		}
		shares, err := ParseQuantity(values[index["shares"]])
		if err != nil {
			return nil, &FormatError{Row: row, Msg: fmt.Sprintf("invalid shares %q", values[index["shares"]])}
		}
		price, err := ParseMoney(values[index["price"]], currency)
		if err != nil {
			return nil, &FormatError{Row: row, Msg: fmt.Sprintf("invalid price %q", values[index["price"]])}
		}
		if price.IsNegative() {
			return nil, &FormatError{Row: row, Msg: fmt.Sprintf("negative price %q", values[index["price"]])}
		}

		trades = append(trades, NewTrade(symbol, shares, price, values[index["date"]]))
	}
	return trades, nil
}

// splitFields splits a ledger line on commas and trims every field.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
