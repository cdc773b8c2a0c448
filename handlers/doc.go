// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the partner portal
proxy API.

# Handler Types

Each handler is a struct with injected configuration and the shared
upstream client:

  - SessionHandler: login and logout (cookie issuance and clearing)
  - AdminHandler: admin account creation and updates
  - PartnerHandler: partner creation, updates, password reset
  - UserHandler: batch user creation (admin and self-service), updates, password reset
  - StatsHandler: dashboard and listing reads for both roles
  - ReferralHandler: the dual-access referred-users listing

Handlers are created via constructor functions that accept Config and the
upstream client:

	session := handlers.NewSessionHandler(cfg, up)

# Request Flow

Every handler follows the same sequence: resolve the session credential
(auth package), validate the inbound body locally so bad requests never
cost an upstream call, forward via the upstream client, and relay the
result. Success bodies pass through byte-for-byte with the upstream
status; failures are reshaped into the {kind, message} envelope.

# Validation

Email checks use the deliberately lax pattern in validate.go. Batch user
input is normalized by normalizeUsers, which accepts a users array or an
emails string/array and applies the default region.
*/
package handlers
