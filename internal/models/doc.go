// Package models defines domain entities and persistence interfaces for the WatchLog Insights service.
//
// The package contains two categories of types:
//
// 1. Per-request analytics values, generated and discarded with each API call:
//   - [WatchRecord] : One synthetic viewing event
//   - [DashboardSummary] : The aggregated response served to the client
//   - [CategorySummary], [ChannelSummary], [DailyPattern] : Breakdown rows inside a summary
//
// 2. Persistent entities backing authentication:
//   - [Session] : A logged-in user's Google tokens, keyed by session ID
//
// Sessions are the only write path in the service. Watch records are never
// persisted; they exist for the lifetime of one request.
//
// The [SessionStore] interface defines session lifecycle operations. Implementations
// live in internal/repositories (in-memory and SQLite-backed).
package models
