// Package services contains HTTP API clients.
//
// # YouTube Data API
//
// [YouTubeService] wraps the subset of the YouTube Data API v3 the sync task
// needs: the authenticated user's channel, subscription names, playlists,
// and the region's video categories. Requests carry the Google OAuth access
// token as a bearer header. The base URL is injectable so tests can point the
// client at an httptest server.
//
// Real watch history is not available through the public API, which is why
// the analytics layer generates mock records; the Data API supplies only
// real names to seed the generator.
//
// # Backend API client
//
// [APIService] is the client the CLI and TUI use against a running WatchLog
// server: raw Get/Post plus typed helpers for the dashboard, video, category,
// sync, and profile endpoints. It sends the service's own JWT, never Google
// credentials.
package services
