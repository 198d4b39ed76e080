package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/docs"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	ledger := func(extra map[string]complete.Predictor) *complete.Command {
		flags := map[string]complete.Predictor{
			"f":    predict.Files("*.csv"),
			"from": predict.Set{"0d", "-1w", "-1m", "-1y"},
			"to":   predict.Set{"0d"},
			"c":    predict.Set{"INR", "USD", "EUR", "GBP", "JPY"},
		}
		for k, v := range extra {
			flags[k] = v
		}
		return &complete.Command{Flags: flags}
	}

	sortKeys := make(predict.Set, len(tracker.SortKeys))
	for i, k := range tracker.SortKeys {
		sortKeys[i] = string(k)
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report": ledger(map[string]complete.Predictor{
				"json": predict.Nothing,
				"q":    predict.Set{"$.metrics", "$.holdings[*].symbol", "$.timeline"},
				"html": predict.Nothing,
			}),
			"holdings": ledger(map[string]complete.Predictor{
				"search": predict.Something,
				"sort":   sortKeys,
				"desc":   predict.Nothing,
				"page":   predict.Something,
				"size":   predict.Something,
				"json":   predict.Nothing,
			}),
			"summary":  ledger(map[string]complete.Predictor{"json": predict.Nothing}),
			"timeline": ledger(map[string]complete.Predictor{"json": predict.Nothing}),
			"fmt": {Flags: map[string]complete.Predictor{
				"f": predict.Files("*.csv"),
				"w": predict.Nothing,
			}},
			"serve": {Flags: map[string]complete.Predictor{
				"port": predict.Something,
			}},
			"topic": {Args: predict.Set(append(topics, "readme", "*"))},
		},
	}
}
