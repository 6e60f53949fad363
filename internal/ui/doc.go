// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a keyboard-driven analytics dashboard:
//  1. [DashboardView] : Watch totals, category and daily-pattern bar charts, channel ranking
//  2. [VideoListView] : Browse the raw watch history for the current window
//  3. [SyncView] : Outcome of a POST /api/sync-youtube-data run
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Data loads through the [services.APIService] client in tea.Cmd closures, so the
// terminal stays responsive while requests are in flight.
//
// Lookback windows switch with 1/2/3 (7, 30, and 90 days); bar charts rescale to
// the largest value in the window. Contextual help renders via charmbracelet/bubbles/help.
package ui
