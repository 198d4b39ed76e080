// Package tracker derives portfolio analytics from a trade ledger.
//
// A ledger is a CSV text whose header names at least the columns symbol,
// shares, price and date, in any order. Each data row is a trade: positive
// shares for a buy, negative shares for a sell.
//
// The derivation is a pipeline of pure functions:
//   - [ParseTrades] converts the CSV text into trades.
//   - [Aggregate] folds trades into holdings with a blended average cost basis,
//     valued at the most recent trade price of each symbol.
//   - [Summarize] computes the total value and the best and worst performers.
//   - [BuildTimeline] replays trades chronologically into a value per trade date.
//
// Amounts and quantities are exact decimals. The ledger is single currency, the
// currency is only used to display amounts.
//
// This package is the core of the `tracker` command-line tool and of its HTTP
// API. Neither keeps state between two analyses.
package tracker
