// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request and response types exchanged with the
browser, plus the small set of shared constants: role names, session cookie
names, the upstream token header names, and the error-kind vocabulary.

Every endpoint reports failures with the same envelope:

	{"kind": "unauthorized", "message": "admin session required"}

Upstream payloads are not modeled here; proxied success bodies are passed
through as raw JSON.
*/
package models
