package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// ledgerFlags are the flags common to every command reading a ledger.
type ledgerFlags struct {
	file     string
	from     string
	to       string
	currency string
}

func (l *ledgerFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&l.file, "f", "-", "CSV ledger file, - for standard input")
	f.StringVar(&l.from, "from", "", "Keep trades on or after this date. See 'tracker topic ledger' for supported date formats.")
	f.StringVar(&l.to, "to", "", "Keep trades on or before this date.")
	f.StringVar(&l.currency, "c", "", "Currency of the ledger prices, defaults to TRACKER_CURRENCY")
}

// dateRange parses the from and to flags.
func (l *ledgerFlags) dateRange() (date.Range, error) {
	var from, to date.Date
	var err error
	if l.from != "" {
		if from, err = date.ParseRelative(l.from); err != nil {
			return date.Range{}, fmt.Errorf("invalid -from: %w", err)
		}
	}
	if l.to != "" {
		if to, err = date.ParseRelative(l.to); err != nil {
			return date.Range{}, fmt.Errorf("invalid -to: %w", err)
		}
	}
	return date.NewRange(from, to), nil
}

// read returns the ledger text.
func (l *ledgerFlags) read() (string, error) {
	if l.file == "" || l.file == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read standard input: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(l.file)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// analyze reads the ledger and reports on the trades within the date range.
func (l *ledgerFlags) analyze(defaultCurrency string, log zerolog.Logger) (*tracker.Report, error) {
	r, err := l.dateRange()
	if err != nil {
		return nil, err
	}
	text, err := l.read()
	if err != nil {
		return nil, err
	}
	currency := l.currency
	if currency == "" {
		currency = defaultCurrency
	}
	parser := tracker.Parser{
		Currency: currency,
		OnSkip: func(row, fields, want int) {
			log.Debug().Str("file", l.file).Int("row", row).Int("fields", fields).Int("want", want).Msg("skipped malformed row")
		},
	}
	return parser.Analyze(text, r)
}

// printJSON prints v as indented JSON. If query is not empty, only the result
// of this JSONPath query is printed.
func printJSON(v any, query string) error {
	var doc any = v
	if query != "" {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		if doc, err = jsonpath.Get(query, generic); err != nil {
			return fmt.Errorf("error evaluating %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
