package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const ledger = `symbol,shares,price,date
AAPL,10,100,2024-01-01
MSFT,8,300,2024-01-15
AAPL,5,120,2024-02-01
`

// Helper function to create a temporary ledger file
func createTempLedger(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "trades.csv")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp ledger: %v", err)
	}
	return name
}

// run executes a subcommand with args, feeding in to its standard input, and
// returns its standard output.
func run(t *testing.T, cmd subcommands.Command, in string, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	// isolate from any .env or TRACKER_ variable of the developer.
	chdir(t, t.TempDir())
	for _, k := range []string{"CONFIG", "CURRENCY", "PAGE_SIZE", "LOG_LEVEL"} {
		t.Setenv("TRACKER_"+k, "")
	}

	var out bytes.Buffer
	oldIn, oldOut := stdin, stdout
	stdin, stdout = strings.NewReader(in), &out
	defer func() { stdin, stdout = oldIn, oldOut }()

	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%q) error: %v", args, err)
	}
	return cmd.Execute(context.Background(), f), out.String()
}

func TestReportJSON(t *testing.T) {
	status, out := run(t, &reportCmd{}, ledger, "-json", "-c", "USD")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	var got struct {
		Trades   []any `json:"trades"`
		Holdings []struct {
			Symbol string `json:"symbol"`
		} `json:"holdings"`
		Metrics struct {
			UniqueSymbols int `json:"uniqueSymbols"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(got.Trades) != 3 {
		t.Errorf("got %d trades, want 3", len(got.Trades))
	}
	if len(got.Holdings) != 2 || got.Holdings[0].Symbol != "AAPL" || got.Holdings[1].Symbol != "MSFT" {
		t.Errorf("unexpected holdings %+v", got.Holdings)
	}
	if got.Metrics.UniqueSymbols != 2 {
		t.Errorf("got %d unique symbols, want 2", got.Metrics.UniqueSymbols)
	}
}

func TestReportQuery(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"$.metrics.topPerformer.symbol", `"AAPL"`},
		{"$.holdings[*].symbol", `["AAPL","MSFT"]`},
		{"$.metrics.uniqueSymbols", `2`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, out := run(t, &reportCmd{}, ledger, "-q", tt.query)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			var got, want any
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON output: %v\n%s", err, out)
			}
			json.Unmarshal([]byte(tt.want), &want)
			g, _ := json.Marshal(got)
			w, _ := json.Marshal(want)
			if string(g) != string(w) {
				t.Errorf("query %q got %s, want %s", tt.query, g, w)
			}
		})
	}
}

func TestReportFromFile(t *testing.T) {
	name := createTempLedger(t, ledger)
	status, out := run(t, &reportCmd{}, "", "-f", name, "-from", "2024-01-10", "-to", "2024-01-31", "-q", "$.holdings[*].symbol")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if got := strings.Join(strings.Fields(out), ""); got != `["MSFT"]` {
		t.Errorf("got %s, want [\"MSFT\"]", got)
	}
}

func TestReportHTML(t *testing.T) {
	status, out := run(t, &reportCmd{}, ledger, "-html")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(out, "<h1>Portfolio Report</h1>") || !strings.Contains(out, "<table>") {
		t.Errorf("unexpected HTML output:\n%s", out)
	}
}

func TestReportMarkdown(t *testing.T) {
	status, out := run(t, &reportCmd{}, ledger)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	for _, want := range []string{"Portfolio Report", "AAPL", "MSFT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestReportErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		args []string
		want subcommands.ExitStatus
	}{
		{"html and json", ledger, []string{"-html", "-json"}, subcommands.ExitUsageError},
		{"bad ledger", "symbol,shares\nAAPL,1", nil, subcommands.ExitFailure},
		{"bad date", ledger, []string{"-from", "someday"}, subcommands.ExitFailure},
		{"missing file", "", []string{"-f", filepath.Join(os.TempDir(), "does-not-exist.csv")}, subcommands.ExitFailure},
		{"bad query", ledger, []string{"-q", "$.["}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, _ := run(t, &reportCmd{}, tt.in, tt.args...); status != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, status)
			}
		})
	}
}

func TestHoldingsJSON(t *testing.T) {
	status, out := run(t, &holdingsCmd{}, ledger, "-json", "-sort", "currentvalue", "-desc", "-size", "1")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	var got struct {
		Holdings []struct {
			Symbol string `json:"symbol"`
		} `json:"holdings"`
		Page  int `json:"page"`
		Pages int `json:"pages"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(got.Holdings) != 1 || got.Holdings[0].Symbol != "MSFT" {
		t.Errorf("unexpected holdings %+v", got.Holdings)
	}
	if got.Page != 1 || got.Pages != 2 || got.Total != 2 {
		t.Errorf("got page %d/%d of %d, want 1/2 of 2", got.Page, got.Pages, got.Total)
	}
}

func TestHoldingsBadSort(t *testing.T) {
	if status, _ := run(t, &holdingsCmd{}, ledger, "-sort", "price"); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}

func TestSummaryJSON(t *testing.T) {
	status, out := run(t, &summaryCmd{}, ledger, "-json", "-c", "USD")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	want := `{"totalValue":{"currency":"USD","amount":4200},"topPerformer":{"symbol":"AAPL","gain":12.5},"worstPerformer":{"symbol":"MSFT","gain":0},"uniqueSymbols":2}`
	var got any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	compact, _ := json.Marshal(got)
	var w any
	json.Unmarshal([]byte(want), &w)
	wantCompact, _ := json.Marshal(w)
	if string(compact) != string(wantCompact) {
		t.Errorf("got %s, want %s", compact, wantCompact)
	}
}

func TestTimelineJSON(t *testing.T) {
	status, out := run(t, &timelineCmd{}, ledger, "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	var got []struct {
		Date  string `json:"date"`
		Value struct {
			Amount float64 `json:"amount"`
		} `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	// AAPL and MSFT valued at their latest prices, 120 and 300.
	want := []float64{1200, 3600, 4200}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Value.Amount != want[i] {
			t.Errorf("point %s got %v, want %v", p.Date, p.Value.Amount, want[i])
		}
	}
}

func TestTopic(t *testing.T) {
	status, out := run(t, &topicCmd{}, "", "ledger")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(strings.ToLower(out), "symbol") {
		t.Errorf("ledger topic does not mention the symbol column:\n%s", out)
	}

	if status, _ := run(t, &topicCmd{}, "", "nope"); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure for an unknown topic, got %v", status)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"report", "holdings", "summary", "timeline", "fmt", "serve", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("completion is missing the %q subcommand", name)
		}
	}
	if _, ok := c.Sub["holdings"].Flags["sort"]; !ok {
		t.Error("holdings completion is missing the -sort flag")
	}
}

func TestFmt(t *testing.T) {
	status, out := run(t, &fmtCmd{}, "Date,Symbol,Shares,Price\n2024-02-01,msft,1,300.0\n2024-01-01,AAPL,2,100\n2024-01-02,AAPL\n")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	want := "symbol,shares,price,date\nAAPL,2,100,2024-01-01\nMSFT,1,300,2024-02-01\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFmtWrite(t *testing.T) {
	name := createTempLedger(t, "date,symbol,shares,price\n2024-02-01,MSFT,1,300\n2024-01-01,AAPL,2,100\n")
	status, out := run(t, &fmtCmd{}, "", "-f", name, "-w")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if out != "" {
		t.Errorf("-w should not print the ledger, got %q", out)
	}
	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if want := "symbol,shares,price,date\nAAPL,2,100,2024-01-01\nMSFT,1,300,2024-02-01\n"; string(got) != want {
		t.Errorf("rewritten ledger:\n%s\nwant:\n%s", got, want)
	}

	if status, _ := run(t, &fmtCmd{}, "", "-w"); status != subcommands.ExitUsageError {
		t.Errorf("-w on standard input: expected ExitUsageError, got %v", status)
	}
}

// chdir changes the working directory to dir and restores it when the test
// ends (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
