// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http"

	"github.com/refdash/partner-portal/models"
)

// Credential is a resolved session token bound to a role. The role decides
// which upstream header carries the token.
type Credential struct {
	Role  string
	Token string
}

// Header returns the upstream header name that carries this token.
func (c Credential) Header() string {
	if c.Role == models.RoleAdmin {
		return models.AdminTokenHeader
	}
	return models.PartnerTokenHeader
}

// ResolveAdmin extracts an admin session token from the request.
// A header override (Admin-Token or X-Admin-Token) takes precedence over
// the admin-token cookie, so non-browser callers work without cookies.
func ResolveAdmin(r *http.Request) (Credential, bool) {
	token, ok := tokenFrom(r, models.AdminTokenHeader, "X-Admin-Token", models.AdminCookie)
	return Credential{Role: models.RoleAdmin, Token: token}, ok
}

// ResolvePartner extracts a partner session token, header override first.
func ResolvePartner(r *http.Request) (Credential, bool) {
	token, ok := tokenFrom(r, models.PartnerTokenHeader, "X-Partner-Token", models.PartnerCookie)
	return Credential{Role: models.RolePartner, Token: token}, ok
}

// Resolve extracts a credential for a dual-access endpoint. The admin token
// is checked first; a caller presenting both is treated as an admin.
func Resolve(r *http.Request) (Credential, bool) {
	if cred, ok := ResolveAdmin(r); ok {
		return cred, true
	}
	return ResolvePartner(r)
}

func tokenFrom(r *http.Request, header, altHeader, cookie string) (string, bool) {
	if v := r.Header.Get(header); v != "" {
		return v, true
	}
	if v := r.Header.Get(altHeader); v != "" {
		return v, true
	}
	if c, err := r.Cookie(cookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}
