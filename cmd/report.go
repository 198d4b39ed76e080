package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tracker/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	ledgerFlags
	json  bool
	query string
	html  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full analysis of a trade ledger" }
func (*reportCmd) Usage() string {
	return `tracker report [-f <ledger.csv>] [-from <date>] [-to <date>] [-c <currency>] [-json [-q <jsonpath>] | -html]

  Displays the summary, holdings, allocation and timeline of a CSV trade ledger.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "print the report as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON report, implies -json")
	f.BoolVar(&c.html, "html", false, "print the report as an HTML fragment")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.html && (c.json || c.query != "") {
		fmt.Fprintln(os.Stderr, "Error: -html and -json are mutually exclusive")
		return subcommands.ExitUsageError
	}
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

	switch {
	case c.json || c.query != "":
		if err := printJSON(report, c.query); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing report: %v\n", err)
			return subcommands.ExitFailure
		}
	case c.html:
		html, err := renderer.HTML(renderer.RenderReport(report))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
			return subcommands.ExitFailure
		}
		io.WriteString(stdout, html)
	default:
		printMarkdown(renderer.RenderReport(report))
	}
	return subcommands.ExitSuccess
}
