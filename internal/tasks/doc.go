// Package tasks implements the sync operation: fetching the user's real
// channel, subscription, and category names from the YouTube Data API and
// assembling them into the name pool that seeds the mock generator.
//
// Sync never fails hard. Collaborator errors are folded into the returned
// [SyncResult]: the channel lookup failing yields status "error" with the
// built-in pool, a partial fetch yields "partial_success" with whatever names
// came back, and a clean run yields "success". Operations emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks
