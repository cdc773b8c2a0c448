// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http"
	"time"

	"github.com/refdash/partner-portal/models"
)

// sessionTTL is the lifetime of a session cookie set at login.
const sessionTTL = 30 * 24 * time.Hour

// SetSessionCookie issues the session cookie for the given role. The token
// lives only in this httpOnly cookie; it never appears in a response body.
func SetSessionCookie(w http.ResponseWriter, role, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(role),
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookies expires both session cookies unconditionally,
// regardless of which one was actually set.
func ClearSessionCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{models.AdminCookie, models.PartnerCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func cookieName(role string) string {
	if role == models.RoleAdmin {
		return models.AdminCookie
	}
	return models.PartnerCookie
}
