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

type AdminHandler struct {
	cfg cliparse.Config
	up  *upstream.Client
}

func NewAdminHandler(cfg cliparse.Config, up *upstream.Client) *AdminHandler {
	return &AdminHandler{cfg: cfg, up: up}
}

// CreateAdmin handles POST /api/create-admin
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	var req models.CreateAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if req.FullName == "" || req.Password == "" || req.CurrentAdminPassword == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
			"full_name, password and current_admin_password are required")
		return
	}
	if !ValidEmail(req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "a valid email is required")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.CreateAdmin,
		Token:  &cred,
		Body:   req,
	})
	relay(w, res, err)
}

// UpdateAdminData handles PATCH /api/update-admin-data
func (h *AdminHandler) UpdateAdminData(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	var req models.UpdateAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if !ValidEmail(req.ExistingEmail) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "a valid existing_email is required")
		return
	}
	if req.Email == nil && req.FullName == nil && req.NewPassword == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
			"at least one of email, full_name or new_password is required")
		return
	}
	if req.Email != nil && !ValidEmail(*req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "email is not a valid address")
		return
	}
	if req.NewPassword != nil && (req.CurrentPassword == nil || *req.CurrentPassword == "") {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
			"current_password is required to change the password")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPatch,
		URL:    h.cfg.Functions.UpdateAdmin,
		Token:  &cred,
		Body:   req,
	})
	relay(w, res, err)
}
