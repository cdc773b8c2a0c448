// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
partner-portal is the server-side gateway for the partner/referral
dashboard. It is an authenticated proxy: browsers talk to it same-origin,
it validates request origin, resolves which role's session token (admin or
partner) authorizes the call, and forwards the request to the external
function gateway with a fixed header contract: the shared service
credential in Authorization and the session token in Admin-Token or
Partner-Token.

The service holds no state of its own. Sessions live in two httpOnly
cookies (admin-token, part-token) written on login and cleared on logout;
everything else is request-scoped.

Packages:

  - cliparse: flag/env configuration, resolved once at boot
  - models: DTOs, role constants, the {kind, message} error envelope
  - auth: credential resolution and session cookies
  - middleware: origin guard, request logging, response helpers
  - upstream: the outbound forwarder with timeout and error classes
  - handlers: per-endpoint validation and forwarding
  - router: the /api/ route table
  - testutil: recording mock upstream and request/assert helpers
*/
package main
