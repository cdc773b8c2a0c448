// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strings"

	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/models"
)

// StrictOrigin rejects requests whose Origin header is missing or not in
// the allowed set. Used on every state-changing endpoint. A rejection
// short-circuits before any other work; no upstream call happens.
func StrictOrigin(cfg cliparse.Config, next http.HandlerFunc) http.HandlerFunc {
	return guardOrigin(cfg, true, next)
}

// LenientOrigin tolerates a missing Origin header (direct and non-browser
// callers send none) but still rejects a present, disallowed one. Used on
// read endpoints.
func LenientOrigin(cfg cliparse.Config, next http.HandlerFunc) http.HandlerFunc {
	return guardOrigin(cfg, false, next)
}

func guardOrigin(cfg cliparse.Config, required bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedOrigins(cfg, r)

		origin := r.Header.Get("Origin")
		if origin == "" {
			if required {
				ErrorResponse(w, http.StatusForbidden, models.KindInvalidOrigin, "request blocked: missing origin")
				return
			}
		} else if !contains(allowed, origin) {
			ErrorResponse(w, http.StatusForbidden, models.KindInvalidOrigin, "request blocked: origin not allowed")
			return
		}

		// Referer, when present, must sit under an allowed origin.
		if referer := r.Header.Get("Referer"); referer != "" && !hasAllowedPrefix(allowed, referer) {
			ErrorResponse(w, http.StatusForbidden, models.KindInvalidOrigin, "request blocked: referer not allowed")
			return
		}

		next(w, r)
	}
}

// allowedOrigins returns the configured allow-list, falling back to the
// request's own scheme and host when nothing is configured.
func allowedOrigins(cfg cliparse.Config, r *http.Request) []string {
	if len(cfg.AllowedOrigins) > 0 {
		return cfg.AllowedOrigins
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return []string{scheme + "://" + r.Host}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func hasAllowedPrefix(set []string, v string) bool {
	for _, s := range set {
		if strings.HasPrefix(v, s) {
			return true
		}
	}
	return false
}
