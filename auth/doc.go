// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves session credentials from inbound requests and manages
the session cookies.

# Token Resolution

Two roles exist, admin and partner, each with its own cookie (admin-token,
part-token) and override headers (Admin-Token/X-Admin-Token,
Partner-Token/X-Partner-Token). Resolution is role-aware:

	cred, ok := auth.ResolveAdmin(r)   // admin-only endpoints
	cred, ok := auth.ResolvePartner(r) // partner-only endpoints
	cred, ok := auth.Resolve(r)        // dual-access; admin wins

A header override always beats the cookie. Login and logout are the only
endpoints that bypass this package: login sets the cookie, logout clears
both, and neither accepts a header token.

# Cookies

Session cookies are httpOnly, SameSite=Lax, path /, Secure in production,
with a 30-day lifetime. ClearSessionCookies deletes both.
*/
package auth
