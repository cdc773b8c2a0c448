// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/testutil"
	"github.com/refdash/partner-portal/upstream"
)

func strPtr(s string) *string { return &s }

func newAdminHandler(t *testing.T, status int, body string) (*AdminHandler, *testutil.Upstream) {
	t.Helper()
	u := testutil.NewUpstream(t, status, body)
	cfg := testutil.GetTestConfig(u.URL)
	return NewAdminHandler(cfg, upstream.NewClient(cfg)), u
}

func TestCreateAdmin(t *testing.T) {
	valid := models.CreateAdminRequest{
		Email:                "new@admin.co",
		FullName:             "New Admin",
		Password:             "pw",
		CurrentAdminPassword: "current-pw",
	}

	tests := []struct {
		name       string
		body       interface{}
		withToken  bool
		wantStatus int
		wantKind   string
		wantCalls  int
	}{
		{
			name:       "happy path passes upstream body through",
			body:       valid,
			withToken:  true,
			wantStatus: 200,
			wantCalls:  1,
		},
		{
			name:       "no admin token",
			body:       valid,
			wantStatus: 401,
			wantKind:   models.KindUnauthorized,
			wantCalls:  0,
		},
		{
			name: "invalid email",
			body: models.CreateAdminRequest{
				Email: "not-an-email", FullName: "X", Password: "pw", CurrentAdminPassword: "pw",
			},
			withToken:  true,
			wantStatus: 400,
			wantKind:   models.KindBadRequest,
			wantCalls:  0,
		},
		{
			name: "missing current_admin_password",
			body: models.CreateAdminRequest{
				Email: "new@admin.co", FullName: "X", Password: "pw",
			},
			withToken:  true,
			wantStatus: 400,
			wantKind:   models.KindBadRequest,
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, u := newAdminHandler(t, 200, `{"full_name":"New Admin","email":"new@admin.co"}`)

			req := testutil.MakeRequest("POST", "/api/create-admin", tt.body, nil)
			if tt.withToken {
				testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
			}
			w := httptest.NewRecorder()
			h.CreateAdmin(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantKind != "" {
				testutil.AssertErrorKind(t, w, tt.wantKind)
			}
			if u.CallCount() != tt.wantCalls {
				t.Errorf("upstream calls = %d, want %d", u.CallCount(), tt.wantCalls)
			}
			if tt.wantCalls > 0 {
				call := u.LastCall(t)
				if call.Header.Get("Admin-Token") != "admin-tok" {
					t.Errorf("Admin-Token = %q", call.Header.Get("Admin-Token"))
				}
			}
		})
	}
}

func TestCreateAdminHeaderOverride(t *testing.T) {
	h, u := newAdminHandler(t, 200, `{}`)

	req := testutil.MakeRequest("POST", "/api/create-admin", models.CreateAdminRequest{
		Email: "a@b.co", FullName: "A", Password: "pw", CurrentAdminPassword: "pw",
	}, map[string]string{"X-Admin-Token": "header-tok"})
	testutil.AddSessionCookie(req, models.RoleAdmin, "cookie-tok")
	w := httptest.NewRecorder()
	h.CreateAdmin(w, req)

	testutil.AssertStatus(t, w, 200)
	if got := u.LastCall(t).Header.Get("Admin-Token"); got != "header-tok" {
		t.Errorf("forwarded token = %q, header override must beat cookie", got)
	}
}

func TestUpdateAdminData(t *testing.T) {
	tests := []struct {
		name       string
		body       models.UpdateAdminRequest
		wantStatus int
		wantCalls  int
	}{
		{
			name: "update full name",
			body: models.UpdateAdminRequest{
				ExistingEmail: "a@b.com", FullName: strPtr("Renamed"),
			},
			wantStatus: 200,
			wantCalls:  1,
		},
		{
			name: "password change with current password",
			body: models.UpdateAdminRequest{
				ExistingEmail:   "a@b.com",
				NewPassword:     strPtr("new-pw"),
				CurrentPassword: strPtr("old-pw"),
			},
			wantStatus: 200,
			wantCalls:  1,
		},
		{
			name:       "no updatable field",
			body:       models.UpdateAdminRequest{ExistingEmail: "a@b.com"},
			wantStatus: 400,
			wantCalls:  0,
		},
		{
			name:       "missing existing_email",
			body:       models.UpdateAdminRequest{FullName: strPtr("Renamed")},
			wantStatus: 400,
			wantCalls:  0,
		},
		{
			name: "new_password without current_password",
			body: models.UpdateAdminRequest{
				ExistingEmail: "a@b.com", NewPassword: strPtr("new-pw"),
			},
			wantStatus: 400,
			wantCalls:  0,
		},
		{
			name: "invalid replacement email",
			body: models.UpdateAdminRequest{
				ExistingEmail: "a@b.com", Email: strPtr("bad email@x.com"),
			},
			wantStatus: 400,
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, u := newAdminHandler(t, 200, `{"updated":true}`)

			req := testutil.MakeRequest("PATCH", "/api/update-admin-data", tt.body, nil)
			testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
			w := httptest.NewRecorder()
			h.UpdateAdminData(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if u.CallCount() != tt.wantCalls {
				t.Errorf("upstream calls = %d, want %d", u.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestUpdateAdminDataUnauthorized(t *testing.T) {
	h, u := newAdminHandler(t, 200, `{}`)

	req := testutil.MakeRequest("PATCH", "/api/update-admin-data",
		models.UpdateAdminRequest{ExistingEmail: "a@b.com", FullName: strPtr("X")}, nil)
	w := httptest.NewRecorder()
	h.UpdateAdminData(w, req)

	testutil.AssertStatus(t, w, 401)
	testutil.AssertErrorKind(t, w, models.KindUnauthorized)
	if u.CallCount() != 0 {
		t.Errorf("upstream calls = %d, want 0", u.CallCount())
	}
}
