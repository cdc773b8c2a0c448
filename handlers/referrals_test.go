// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/testutil"
	"github.com/refdash/partner-portal/upstream"
)

const referralsBody = `{"partner_info":{"email":"p@x.co"},"users":[],"pagination":{"page":1}}`

func newReferralHandler(t *testing.T, status int, body string) (*ReferralHandler, *testutil.Upstream) {
	t.Helper()
	u := testutil.NewUpstream(t, status, body)
	cfg := testutil.GetTestConfig(u.URL)
	return NewReferralHandler(cfg, upstream.NewClient(cfg)), u
}

func TestPartnerUsersSelfScoped(t *testing.T) {
	h, u := newReferralHandler(t, 200, referralsBody)

	req := testutil.MakeRequest("GET", "/api/get-partner-users-by-partner", nil, nil)
	testutil.AddSessionCookie(req, models.RolePartner, "part-tok")
	w := httptest.NewRecorder()
	h.PartnerUsers(w, req)

	testutil.AssertStatus(t, w, 200)
	call := u.LastCall(t)
	if call.Method != "GET" {
		t.Errorf("method = %q", call.Method)
	}
	if call.Header.Get("Partner-Token") != "part-tok" {
		t.Errorf("Partner-Token = %q", call.Header.Get("Partner-Token"))
	}
	// Self-scoped: no target parameter.
	if call.Query.Get("partner_email") != "" {
		t.Errorf("partner_email query = %q, want empty", call.Query.Get("partner_email"))
	}
}

func TestPartnerUsersAdminTargets(t *testing.T) {
	h, u := newReferralHandler(t, 200, referralsBody)

	req := testutil.MakeRequest("POST", "/api/get-partner-users-by-partner",
		models.PartnerUsersRequest{PartnerEmail: "target@x.co"}, nil)
	testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
	w := httptest.NewRecorder()
	h.PartnerUsers(w, req)

	testutil.AssertStatus(t, w, 200)
	call := u.LastCall(t)
	if call.Header.Get("Admin-Token") != "admin-tok" {
		t.Errorf("Admin-Token = %q", call.Header.Get("Admin-Token"))
	}
	if call.Query.Get("partner_email") != "target@x.co" {
		t.Errorf("partner_email query = %q, want target@x.co", call.Query.Get("partner_email"))
	}
	if !bytes.Contains(call.Body, []byte("target@x.co")) {
		t.Errorf("forwarded body = %s, want target present", call.Body)
	}
}

func TestPartnerUsersAdminWinsOverPartner(t *testing.T) {
	h, u := newReferralHandler(t, 200, referralsBody)

	// Both tokens present: the upstream call must carry Admin-Token.
	req := testutil.MakeRequest("GET", "/api/get-partner-users-by-partner", nil, nil)
	testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
	testutil.AddSessionCookie(req, models.RolePartner, "part-tok")
	w := httptest.NewRecorder()
	h.PartnerUsers(w, req)

	testutil.AssertStatus(t, w, 200)
	call := u.LastCall(t)
	if call.Header.Get("Admin-Token") != "admin-tok" {
		t.Errorf("Admin-Token = %q, admin must take precedence", call.Header.Get("Admin-Token"))
	}
	if call.Header.Get("Partner-Token") != "" {
		t.Error("Partner-Token must not be sent alongside the admin token")
	}
}

func TestPartnerUsersPartnerTargetIgnored(t *testing.T) {
	h, u := newReferralHandler(t, 200, referralsBody)

	// A partner posting a target stays scoped to itself.
	req := testutil.MakeRequest("POST", "/api/get-partner-users-by-partner",
		models.PartnerUsersRequest{PartnerEmail: "victim@x.co"}, nil)
	testutil.AddSessionCookie(req, models.RolePartner, "part-tok")
	w := httptest.NewRecorder()
	h.PartnerUsers(w, req)

	testutil.AssertStatus(t, w, 200)
	call := u.LastCall(t)
	if call.Query.Get("partner_email") != "" {
		t.Error("partner callers must not be able to target another partner")
	}
	if bytes.Contains(call.Body, []byte("victim@x.co")) {
		t.Error("partner-supplied target must not be forwarded")
	}
}

func TestPartnerUsersBadJSON(t *testing.T) {
	h, u := newReferralHandler(t, 200, referralsBody)

	req := httptest.NewRequest("POST", "/api/get-partner-users-by-partner",
		bytes.NewReader([]byte(`{not json`)))
	testutil.AddSessionCookie(req, models.RoleAdmin, "admin-tok")
	w := httptest.NewRecorder()
	h.PartnerUsers(w, req)

	testutil.AssertStatus(t, w, 400)
	testutil.AssertErrorKind(t, w, models.KindBadRequest)
	if u.CallCount() != 0 {
		t.Errorf("upstream calls = %d, want 0", u.CallCount())
	}
}

func TestPartnerUsersUnauthorized(t *testing.T) {
	h, u := newReferralHandler(t, 200, referralsBody)

	req := testutil.MakeRequest("GET", "/api/get-partner-users-by-partner", nil, nil)
	w := httptest.NewRecorder()
	h.PartnerUsers(w, req)

	testutil.AssertStatus(t, w, 401)
	if u.CallCount() != 0 {
		t.Errorf("upstream calls = %d, want 0", u.CallCount())
	}
}
