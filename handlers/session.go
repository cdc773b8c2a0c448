// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/refdash/partner-portal/auth"
	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/middleware"
	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/upstream"
)

type SessionHandler struct {
	cfg cliparse.Config
	up  *upstream.Client
}

func NewSessionHandler(cfg cliparse.Config, up *upstream.Client) *SessionHandler {
	return &SessionHandler{cfg: cfg, up: up}
}

// Login handles POST /api/custom-login. On success exactly one session
// cookie is set; the token itself never appears in the response body.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" || req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "email, password and role are required")
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RolePartner {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "role must be admin or partner")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.Login,
		Body:   req,
	})
	if err != nil {
		relay(w, nil, err)
		return
	}
	if !res.OK() {
		// No cookie is set on any failure path.
		middleware.ErrorResponse(w, res.Status, models.KindUpstreamError, res.ErrorMessage())
		return
	}

	var tokens models.LoginTokens
	if err := json.Unmarshal(res.Body, &tokens); err != nil {
		middleware.ErrorResponse(w, http.StatusBadGateway, models.KindUpstreamError, "malformed upstream response")
		return
	}

	role, token := models.RoleAdmin, tokens.AdminToken
	if token == "" {
		role, token = models.RolePartner, tokens.PartnerToken
	}
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadGateway, models.KindUpstreamError, "malformed upstream response")
		return
	}

	// The upstream is not allowed to switch the session to a role the
	// caller didn't ask for.
	if role != req.Role {
		slog.Warn("login role mismatch", "requested", req.Role, "resolved", role)
		middleware.ErrorResponse(w, http.StatusBadGateway, models.KindUpstreamError,
			"upstream returned credentials for unexpected role")
		return
	}

	auth.SetSessionCookie(w, role, token, h.cfg.Production)
	slog.Info("login succeeded", "role", role)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Logout handles POST /api/logout. Stateless: no upstream call, both
// session cookies are cleared whether or not they were set.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookies(w, h.cfg.Production)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
