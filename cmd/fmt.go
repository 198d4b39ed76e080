package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
)

type fmtCmd struct {
	ledgerFlags
	write bool
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "format a ledger into a canonical form" }
func (*fmtCmd) Usage() string {
	return `tracker fmt [-f <ledger.csv>] [-w]

  Prints the ledger with the standard columns only, trades sorted by date and
  malformed rows removed. With -w the ledger file is rewritten in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "CSV ledger file, - for standard input")
	f.BoolVar(&c.write, "w", false, "write the result to the ledger file instead of the standard output")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.write && (c.file == "" || c.file == "-") {
		fmt.Fprintln(os.Stderr, "Error: -w requires a ledger file")
		return subcommands.ExitUsageError
	}
	_, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	text, err := c.read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	parser := tracker.Parser{
		OnSkip: func(row, fields, want int) {
			log.Warn().Str("file", c.file).Int("row", row).Int("fields", fields).Int("want", want).Msg("dropped malformed row")
		},
	}
	trades, err := parser.Parse(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var b bytes.Buffer
	if err := tracker.EncodeTrades(&b, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.write {
		stdout.Write(b.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.file, b.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", c.file).Int("trades", len(trades)).Msg("ledger formatted")
	return subcommands.ExitSuccess
}
