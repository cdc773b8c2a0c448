// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Origin Guard

CSRF defense by Origin/Referer validation against the configured
allow-list (falling back to the request's own origin when unconfigured):

	mux.HandleFunc("POST /api/logout", middleware.StrictOrigin(cfg, handler))
	mux.HandleFunc("GET /api/get-all-users", middleware.LenientOrigin(cfg, handler))

Strict mode (all POST/PATCH routes) requires a matching Origin header;
lenient mode (all GET routes) tolerates its absence. Both modes reject a
Referer that does not start with an allowed origin. Rejections are 403
with kind invalid_origin and never reach the upstream.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
correlated by a per-request UUID echoed in X-Request-Id.

# Responses

JSONResponse and RawResponse write JSON bodies; ErrorResponse writes the
standard {kind, message} envelope. Recover wraps the whole mux and maps
panics to a generic 500.
*/
package middleware
