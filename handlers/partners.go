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

type PartnerHandler struct {
	cfg cliparse.Config
	up  *upstream.Client
}

func NewPartnerHandler(cfg cliparse.Config, up *upstream.Client) *PartnerHandler {
	return &PartnerHandler{cfg: cfg, up: up}
}

// CreatePartner handles POST /api/create-partner. The upstream body is
// passed through in full.
func (h *PartnerHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	var req models.CreatePartnerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if req.FullName == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
			"full_name and password are required")
		return
	}
	if !ValidEmail(req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "a valid email is required")
		return
	}
	// Upstream expects a strict JSON number; numeric strings fail the
	// decode above, a missing field fails here.
	if req.CommissionPercent == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
			"commission_percent is required and must be a number")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.CreatePartner,
		Token:  &cred,
		Body:   req,
	})
	relay(w, res, err)
}

// UpdatePartnerData handles PATCH /api/update-partner-data
func (h *PartnerHandler) UpdatePartnerData(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	var req models.UpdatePartnerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if req.PartnerID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "partner_id is required")
		return
	}
	if req.Email == nil && req.FullName == nil && req.IsActive == nil &&
		req.CommissionPercent == nil && len(req.CommissionSlabs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
			"at least one field to update is required")
		return
	}
	if req.Email != nil && !ValidEmail(*req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "email is not a valid address")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPatch,
		URL:    h.cfg.Functions.UpdatePartner,
		Token:  &cred,
		Body:   req,
	})
	relay(w, res, err)
}

// ResetPassword handles POST /api/reset-partner-password. The upstream
// function URL has no fallback; the call fails closed with 500 when it is
// unconfigured. An upstream 207 (partial result) is relayed as-is, not
// rewritten as an error.
func (h *PartnerHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	var req models.ResetPasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}
	if !ValidEmail(req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "a valid email is required")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.ResetPartnerPassword,
		Token:  &cred,
		Body:   req,
	})
	relay(w, res, err)
}
