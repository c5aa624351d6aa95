// Package folio reconstructs a personal investment portfolio from its
// transaction ledger.
//
// The ledger is an append-only list of buys, sells, deposits, withdrawals
// and dividends kept in a human readable JSONL file (or a SQLite store).
// Raw records are validated by a Normalizer into typed Transactions, then
// replayed per instrument:
//   - Standard instruments go through a FIFO LotTracker that yields the held
//     quantity and the average cost of the open lots.
//   - Instruments listed in an InstrumentSet are valued with the
//     NetCashflowValuator, where buys and sells are contributions and
//     withdrawals of value, optionally grown along a GrowthCurve.
//
// Aggregate prices the open positions from a PriceMap and rolls them into
// portfolio totals. Everything is recomputed from the ledger on each call;
// no state is cached between calls and no function reads the clock or the
// environment unless a Clock is injected.
//
// Instrument scoring lives in the scoring sub-package.
package folio
