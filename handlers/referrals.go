// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/refdash/partner-portal/auth"
	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/middleware"
	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/upstream"
)

type ReferralHandler struct {
	cfg cliparse.Config
	up  *upstream.Client
}

func NewReferralHandler(cfg cliparse.Config, up *upstream.Client) *ReferralHandler {
	return &ReferralHandler{cfg: cfg, up: up}
}

// PartnerUsers handles GET and POST /api/get-partner-users-by-partner, the
// dual-access referrals listing. An admin caller may target any partner by
// posting {"partner_email": ...}; a partner caller is always scoped to its
// own identity and any posted target is ignored.
func (h *ReferralHandler) PartnerUsers(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.Resolve(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin or partner session required")
		return
	}

	var target string
	var body []byte
	if r.Method == http.MethodPost {
		defer r.Body.Close()
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "unreadable request body")
			return
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			var req models.PartnerUsersRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
				return
			}
			target = req.PartnerEmail
			body = raw
		}
	}

	req := upstream.Request{
		Method: r.Method,
		URL:    h.cfg.Functions.PartnerUsers,
		Token:  &cred,
		Query:  r.URL.Query(),
	}
	// The privileged target override applies only to the admin credential;
	// partner queries stay self-scoped.
	if cred.Role == models.RoleAdmin && target != "" {
		if req.Query == nil {
			req.Query = url.Values{}
		}
		req.Query.Set("partner_email", target)
		req.Body = json.RawMessage(body)
	}

	res, err := h.up.Do(r.Context(), req)
	relay(w, res, err)
}
