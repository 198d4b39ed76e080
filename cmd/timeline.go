package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tracker/renderer"
)

// timelineCmd holds the flags for the 'timeline' subcommand.
type timelineCmd struct {
	ledgerFlags
	json bool
}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display the portfolio value at each trade date" }
func (*timelineCmd) Usage() string {
	return `tracker timeline [-f <ledger.csv>] [-from <date>] [-to <date>] [-json]

  Replays the trades in date order and displays the portfolio value after
  each trade date. Every symbol is valued at its latest known price.
`
}

func (c *timelineCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "print the timeline as JSON")
}

func (c *timelineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		if err := printJSON(report.Timeline, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing timeline: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTimeline(report.Timeline))
	return subcommands.ExitSuccess
}
