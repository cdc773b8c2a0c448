// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the API routes.

NewRouter builds the http.ServeMux: every proxied operation lives under
/api/ and is wrapped with request logging plus the origin guard, strict
for POST/PATCH and lenient for GET. The referrals endpoint is registered for
both methods, since admins target a partner through a POST body while
partners read their own listing with a GET.
*/
package router
