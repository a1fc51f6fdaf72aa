// Package stockbook keeps the accounts of a stock portfolio from its
// transaction ledger.
//
// The ledger is a list of [Transaction]: trades (BUY, SELL), dividends, and
// account activity (deposits, withdrawals, taxes, fees). [Replay] replays it
// in chronological order into:
//   - open holdings, with their average cost and market value,
//   - realized trades, one per sale, valued against the average cost,
//   - dividend income per ticker, net of withholding tax,
//   - account activity totals.
//
// Positions are kept per ticker and broker, or per ticker when brokers are
// combined. [ComputeStats] aggregates holdings, realized gains and dividends
// into portfolio statistics, and [SolveXIRR] computes the annualized return
// of dated cash flows.
//
// The core is pure and never fails: it replays any input, capping sells at
// the held quantity and valuing positions without a price at their cost.
// Validation belongs to the outer layers: the [Book] that persists the
// ledger as JSONL, and the CSV import.
package stockbook
