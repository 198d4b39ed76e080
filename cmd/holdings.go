package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	ledgerFlags
	search string
	sort   string
	desc   bool
	page   int
	size   int
	json   bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the holdings table" }
func (*holdingsCmd) Usage() string {
	return `tracker holdings [-f <ledger.csv>] [-search <text>] [-sort <column> [-desc]] [-page <n>] [-size <n>] [-json]

  Displays a page of the current holdings: shares, average cost basis,
  current price and value, and unrealized gain.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	keys := make([]string, len(tracker.SortKeys))
	for i, k := range tracker.SortKeys {
		keys[i] = string(k)
	}
	f.StringVar(&c.search, "search", "", "only display symbols containing this text, case insensitive")
	f.StringVar(&c.sort, "sort", "", "column to sort by: "+strings.Join(keys, ", "))
	f.BoolVar(&c.desc, "desc", false, "sort in descending order")
	f.IntVar(&c.page, "page", 1, "page to display")
	f.IntVar(&c.size, "size", 0, "holdings per page, defaults to TRACKER_PAGE_SIZE")
	f.BoolVar(&c.json, "json", false, "print the page as JSON")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sortBy, err := tracker.ParseSortKey(c.sort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -sort: %v\n", err)
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

	size := c.size
	if size <= 0 {
		size = cfg.PageSize
	}
	page := tracker.HoldingQuery{
		Search:     c.search,
		SortBy:     sortBy,
		Descending: c.desc,
		Page:       c.page,
		PageSize:   size,
	}.Apply(report.Holdings)

	if c.json {
		if err := printJSON(page, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing holdings: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderHoldings(page))
	return subcommands.ExitSuccess
}
