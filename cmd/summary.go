package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tracker/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	ledgerFlags
	json bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `tracker summary [-f <ledger.csv>] [-from <date>] [-to <date>] [-json]

  Displays the total value, the top and worst performers and the number of
  symbols held.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "print the summary as JSON")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := c.analyze(cfg.Currency, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(report.Metrics, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing summary: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderSummary(report.Metrics))
	return subcommands.ExitSuccess
}
