// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"strings"
)

// Role constants
const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
)

// Session cookie names
const (
	AdminCookie   = "admin-token"
	PartnerCookie = "part-token"
)

// Upstream header names carrying the session token
const (
	AdminTokenHeader   = "Admin-Token"
	PartnerTokenHeader = "Partner-Token"
)

// Error kinds used in the standard error envelope
const (
	KindInvalidOrigin       = "invalid_origin"
	KindBadRequest          = "bad_request"
	KindUnauthorized        = "unauthorized"
	KindServerMisconfigured = "server_misconfigured"
	KindUpstreamError       = "upstream_error"
	KindUpstreamUnreachable = "upstream_unreachable"
	KindUpstreamTimeout     = "upstream_timeout"
	KindInternal            = "internal"
)

// Request types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateAdminRequest struct {
	Email                string `json:"email"`
	FullName             string `json:"full_name"`
	Password             string `json:"password"`
	CurrentAdminPassword string `json:"current_admin_password"`
}

type CreatePartnerRequest struct {
	FullName          string   `json:"full_name"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	CommissionPercent *float64 `json:"commission_percent"`
}

// UserSpec is one user record in a batch-creation request.
type UserSpec struct {
	Email  string `json:"email"`
	Region string `json:"region,omitempty"`
}

type CreateUsersByAdminRequest struct {
	Users     []UserSpec `json:"users"`
	TrialDays *float64   `json:"trial_days,omitempty"`
}

// CreateUsersRequest accepts the polymorphic self-service shape: either a
// users array, or an emails field holding a string (comma/whitespace
// separated) or an array of strings.
type CreateUsersRequest struct {
	Users     []UserSpec `json:"users"`
	Emails    StringList `json:"emails"`
	Region    string     `json:"region,omitempty"`
	TrialDays *float64   `json:"trial_days,omitempty"`
}

// CreateUsersUpstream is the normalized payload forwarded upstream.
type CreateUsersUpstream struct {
	Users     []UserSpec `json:"users"`
	TrialDays *float64   `json:"trial_days,omitempty"`
}

type UpdateAdminRequest struct {
	ExistingEmail   string  `json:"existing_email"`
	Email           *string `json:"email,omitempty"`
	FullName        *string `json:"full_name,omitempty"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty"`
}

type UpdatePartnerRequest struct {
	PartnerID         string          `json:"partner_id"`
	Email             *string         `json:"email,omitempty"`
	FullName          *string         `json:"full_name,omitempty"`
	IsActive          *bool           `json:"is_active,omitempty"`
	CommissionPercent *float64        `json:"commission_percent,omitempty"`
	CommissionSlabs   json.RawMessage `json:"commission_slabs,omitempty"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type PartnerUsersRequest struct {
	PartnerEmail string `json:"partner_email"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the single error envelope shape used by every endpoint.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// LoginTokens is the upstream login function's response. Exactly one of the
// two fields is expected to be set; which one determines the session role.
type LoginTokens struct {
	AdminToken   string `json:"Admin-Token"`
	PartnerToken string `json:"Partner-Token"`
}

// StringList decodes from either a JSON string (split on commas and
// whitespace) or a JSON array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = splitList(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	out := make(StringList, 0, len(many))
	for _, s := range many {
		out = append(out, splitList(s)...)
	}
	*l = out
	return nil
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
