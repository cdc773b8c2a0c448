// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/refdash/partner-portal/auth"
	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/middleware"
	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/upstream"
)

type StatsHandler struct {
	cfg cliparse.Config
	up  *upstream.Client
}

func NewStatsHandler(cfg cliparse.Config, up *upstream.Client) *StatsHandler {
	return &StatsHandler{cfg: cfg, up: up}
}

// AdminStats handles GET /api/get-admin-stats
func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	h.forwardAdmin(w, r, h.cfg.Functions.AdminStats)
}

// AllPartners handles GET /api/get-all-partners
func (h *StatsHandler) AllPartners(w http.ResponseWriter, r *http.Request) {
	h.forwardAdmin(w, r, h.cfg.Functions.AllPartners)
}

// AllUsers handles GET /api/get-all-users
func (h *StatsHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	h.forwardAdmin(w, r, h.cfg.Functions.AllUsers)
}

// PartnerStats handles GET /api/get-partner-stats. Partner-scoped: the
// upstream derives the partner identity from the token.
func (h *StatsHandler) PartnerStats(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolvePartner(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "partner session required")
		return
	}
	h.forward(w, r, h.cfg.Functions.PartnerStats, cred)
}

func (h *StatsHandler) forwardAdmin(w http.ResponseWriter, r *http.Request, url string) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}
	h.forward(w, r, url, cred)
}

// forward relays a GET, carrying the inbound query string through so
// upstream pagination and filter parameters keep working.
func (h *StatsHandler) forward(w http.ResponseWriter, r *http.Request, url string, cred auth.Credential) {
	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodGet,
		URL:    url,
		Token:  &cred,
		Query:  r.URL.Query(),
	})
	relay(w, res, err)
}
