// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line and environment configuration.

Configuration is resolved once at process start and the resulting Config
struct is injected into every handler; no request-handling code reads
ambient environment state.

Resolution order per field: CLI flag, then environment variable, then
default. The upstream service credential (SUPABASE_PROJECT_ANON_KEY) has
no default and is a boot error when missing. Per-operation upstream URLs
fall back to the fixed upstream function host, except the two
reset-password URLs, which must be configured explicitly.
*/
package cliparse
