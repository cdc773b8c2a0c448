// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/testutil"
	"github.com/refdash/partner-portal/upstream"
)

func newStatsHandler(t *testing.T, status int, body string) (*StatsHandler, *testutil.Upstream) {
	t.Helper()
	u := testutil.NewUpstream(t, status, body)
	cfg := testutil.GetTestConfig(u.URL)
	return NewStatsHandler(cfg, upstream.NewClient(cfg)), u
}

func TestAdminReads(t *testing.T) {
	tests := []struct {
		name     string
		call     func(h *StatsHandler, w http.ResponseWriter, r *http.Request)
		wantPath string
	}{
		{"admin stats", (*StatsHandler).AdminStats, "/get-admin-stats"},
		{"all partners", (*StatsHandler).AllPartners, "/get-all-partners"},
		{"all users", (*StatsHandler).AllUsers, "/get-all-users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, u := newStatsHandler(t, 200, `{"total":42}`)

			// With an admin token the read passes through.
			req := testutil.MakeRequest("GET", "/api"+tt.wantPath+"?page=3&search=foo", nil, nil)
			testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
			w := httptest.NewRecorder()
			tt.call(h, w, req)

			testutil.AssertStatus(t, w, 200)
			call := u.LastCall(t)
			if call.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", call.Path, tt.wantPath)
			}
			if call.Header.Get("Admin-Token") != "admin-tok" {
				t.Errorf("Admin-Token = %q", call.Header.Get("Admin-Token"))
			}
			// Inbound pagination/filter query carries through.
			if call.Query.Get("page") != "3" || call.Query.Get("search") != "foo" {
				t.Errorf("query = %v, want page/search forwarded", call.Query)
			}

			// Without any token: 401, no upstream call.
			before := u.CallCount()
			req = testutil.MakeRequest("GET", "/api"+tt.wantPath, nil, nil)
			w = httptest.NewRecorder()
			tt.call(h, w, req)

			testutil.AssertStatus(t, w, 401)
			testutil.AssertErrorKind(t, w, models.KindUnauthorized)
			if u.CallCount() != before {
				t.Error("unauthorized read must not reach upstream")
			}
		})
	}
}

func TestAdminReadsRejectPartnerToken(t *testing.T) {
	h, u := newStatsHandler(t, 200, `{}`)

	req := testutil.MakeRequest("GET", "/api/get-admin-stats", nil, nil)
	testutil.AddSessionCookie(req, models.RolePartner, "part-tok")
	w := httptest.NewRecorder()
	h.AdminStats(w, req)

	testutil.AssertStatus(t, w, 401)
	if u.CallCount() != 0 {
		t.Errorf("upstream calls = %d, want 0", u.CallCount())
	}
}

func TestPartnerStats(t *testing.T) {
	h, u := newStatsHandler(t, 200, `{"referrals":7}`)

	req := testutil.MakeRequest("GET", "/api/get-partner-stats", nil, nil)
	testutil.AddSessionCookie(req, models.RolePartner, "part-tok")
	w := httptest.NewRecorder()
	h.PartnerStats(w, req)

	testutil.AssertStatus(t, w, 200)
	call := u.LastCall(t)
	if call.Header.Get("Partner-Token") != "part-tok" {
		t.Errorf("Partner-Token = %q", call.Header.Get("Partner-Token"))
	}

	// An admin token does not satisfy the partner-scoped read.
	req = testutil.MakeRequest("GET", "/api/get-partner-stats", nil, nil)
	testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
	w = httptest.NewRecorder()
	h.PartnerStats(w, req)
	testutil.AssertStatus(t, w, 401)
}

func TestReadUpstreamFailurePassthrough(t *testing.T) {
	h, u := newStatsHandler(t, 503, `{"error":"stats store offline"}`)

	req := testutil.MakeRequest("GET", "/api/get-admin-stats", nil, nil)
	testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
	w := httptest.NewRecorder()
	h.AdminStats(w, req)

	testutil.AssertStatus(t, w, 503)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Kind != models.KindUpstreamError || resp.Message != "stats store offline" {
		t.Errorf("resp = %+v", resp)
	}
	if u.CallCount() != 1 {
		t.Errorf("upstream calls = %d", u.CallCount())
	}
}
