// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package upstream is the outbound half of the proxy: it builds and executes
calls against the external function gateway and normalizes the results.

One Client is constructed at boot from the process configuration and shared
by every handler. Each call carries the fixed header contract (raw service
credential in Authorization, the session token in Admin-Token or
Partner-Token) and runs under the inbound request's context with the
configured timeout.

Failure classes are sentinel errors the handlers translate into the error
envelope: ErrMisconfigured (500), ErrTimeout (504), ErrUnreachable (502).
A response that arrived, whatever its status, is a *Response; non-2xx
statuses are passed through to the caller with a message extracted
best-effort from the body.
*/
package upstream
