// Package insights implements the analytics core: mock watch-history
// generation and its reduction to dashboard summaries.
//
// # Generator
//
// [Generator] produces 50 to 150 synthetic [models.WatchRecord] entries per
// call, each with a duration uniform in [5, 120] minutes and a timestamp
// uniform within the requested lookback window. Channel and category names
// are drawn from a [models.NamePool]; the built-in pool ships the standard
// YouTube category list and a fixed set of channels, and a sync against the
// YouTube Data API swaps in the user's real subscription and category names.
//
// The random source is injected so tests can seed it. Output is otherwise
// intentionally non-deterministic: every request sees a fresh history.
//
// # Aggregator
//
// [Analyze] reduces a record list to a [models.DashboardSummary]: total
// minutes, daily average over the window, per-category minutes with a
// percentage share, a descending channel ranking truncated to the top five,
// and per-weekday totals Monday through Sunday.
//
// An empty record list produces zeros throughout; percentage computation
// never divides by zero.
package insights
