// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/refdash/partner-portal/auth"
	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/middleware"
	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/upstream"
)

type UserHandler struct {
	cfg cliparse.Config
	up  *upstream.Client
}

func NewUserHandler(cfg cliparse.Config, up *upstream.Client) *UserHandler {
	return &UserHandler{cfg: cfg, up: up}
}

// CreateUsers handles POST /api/create-user, the dual-access batch
// endpoint. Input is polymorphic (users array, or emails as a string or
// string array) and is normalized before forwarding; records without a
// region get the default.
func (h *UserHandler) CreateUsers(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.Resolve(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin or partner session required")
		return
	}

	var req models.CreateUsersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	users := normalizeUsers(req)
	if len(users) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "no valid email addresses provided")
		return
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.CreateUser,
		Token:  &cred,
		Body: models.CreateUsersUpstream{
			Users:     users,
			TrialDays: req.TrialDays,
		},
	})
	relay(w, res, err)
}

// CreateUsersByAdmin handles POST /api/create-user-by-admin. The explicit
// admin batch is strict: every entry must carry a valid address.
func (h *UserHandler) CreateUsersByAdmin(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	var req models.CreateUsersByAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if len(req.Users) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "users must be a non-empty array")
		return
	}
	for i, u := range req.Users {
		if !ValidEmail(strings.TrimSpace(u.Email)) {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest,
				fmt.Sprintf("users[%d].email is not a valid address", i))
			return
		}
	}

	res, err := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.CreateUser,
		Token:  &cred,
		Body:   req,
	})
	relay(w, res, err)
}

// UpdateUserData handles PATCH /api/update-user-data. The body is an
// opaque passthrough; the upstream owns its validation.
func (h *UserHandler) UpdateUserData(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "unreadable request body")
		return
	}

	req := upstream.Request{
		Method: http.MethodPatch,
		URL:    h.cfg.Functions.UpdateUser,
		Token:  &cred,
	}
	if len(body) > 0 {
		req.Body = json.RawMessage(body)
	}

	res, doErr := h.up.Do(r.Context(), req)
	relay(w, res, doErr)
}

// ResetPassword handles POST /api/reset-user-password. Fields beyond email
// are forwarded untouched; the URL is required configuration.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.ResolveAdmin(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "admin session required")
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "unreadable request body")
		return
	}

	var probe models.ResetPasswordRequest
	if err := json.Unmarshal(body, &probe); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}
	if !ValidEmail(probe.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "a valid email is required")
		return
	}

	res, doErr := h.up.Do(r.Context(), upstream.Request{
		Method: http.MethodPost,
		URL:    h.cfg.Functions.ResetUserPassword,
		Token:  &cred,
		Body:   json.RawMessage(body),
	})
	relay(w, res, doErr)
}
