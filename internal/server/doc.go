// Package server provides HTTP routing, middleware, and the REST handlers for
// the WatchLog Insights API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method
// filtering. Preflight OPTIONS requests bypass the method filter so the CORS
// middleware can answer them.
//
// # API Handlers
//
// [API] holds the service dependencies (session store, OAuth flow, JWT
// issuer, sync engine, generator pool) and registers two groups of routes:
//
//   - Analytics: /api/dashboard, /api/videos, /api/categories,
//     /api/sync-youtube-data. Each request generates a fresh mock history
//     from the current name pool and reduces it with the insights package.
//   - Auth: /api/auth/login, /api/auth/callback, /api/auth/session,
//     /api/auth/me, /api/auth/refresh, /api/auth/logout.
//
// # OAuth callback shape
//
// The authorization code is exchanged entirely server-side. The callback
// stores the issued JWT keyed by the state parameter and renders a static
// success page; the client collects the token exactly once via
// /api/auth/session. Tokens never ride in redirect URLs.
//
// # Error shape
//
// Errors are JSON bodies of the form {"detail": "..."} with the matching
// HTTP status code. Protected routes answer 401 for missing, invalid, or
// expired bearer tokens.
package server
