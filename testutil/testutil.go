// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/models"
)

// UpstreamCall records one request the mock upstream received.
type UpstreamCall struct {
	Method string
	Path   string
	Header http.Header
	Query  url.Values
	Body   []byte
}

// Upstream is a recording mock of the external function gateway. It
// answers every request with a fixed status and body and keeps each call
// for assertions (call counts, forwarded headers, forwarded bodies).
type Upstream struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	calls  []UpstreamCall
}

// NewUpstream starts a mock upstream answering with the given status and
// JSON body. The server is shut down when the test ends.
func NewUpstream(t *testing.T, status int, body string) *Upstream {
	t.Helper()

	u := &Upstream{status: status, body: body}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.calls = append(u.calls, UpstreamCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Query:  r.URL.Query(),
			Body:   raw,
		})
		status, body := u.status, u.body
		u.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(u.Server.Close)
	return u
}

// Respond changes the canned response for subsequent calls.
func (u *Upstream) Respond(status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	u.body = body
}

// CallCount returns how many requests reached the mock.
func (u *Upstream) CallCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

// LastCall returns the most recent recorded call, failing the test when
// none happened.
func (u *Upstream) LastCall(t *testing.T) UpstreamCall {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.calls) == 0 {
		t.Fatal("expected at least one upstream call, got none")
	}
	return u.calls[len(u.calls)-1]
}

// TestOrigin is the allowed origin in the standard test configuration.
const TestOrigin = "https://portal.example.com"

// GetTestConfig returns a standard test configuration with every function
// URL pointed at the mock upstream (each under its own path, so handlers
// can be told apart in recorded calls).
func GetTestConfig(upstreamURL string) cliparse.Config {
	return cliparse.Config{
		Port:              3548,
		AllowedOrigins:    []string{TestOrigin},
		ServiceCredential: "test-anon-key",
		UpstreamTimeout:   2 * time.Second,
		Functions: cliparse.FunctionURLs{
			Login:                upstreamURL + "/custom-login",
			CreateAdmin:          upstreamURL + "/create-admin",
			CreatePartner:        upstreamURL + "/create-partner",
			CreateUser:           upstreamURL + "/create-user",
			AdminStats:           upstreamURL + "/get-admin-stats",
			AllPartners:          upstreamURL + "/get-all-partners",
			AllUsers:             upstreamURL + "/get-all-users",
			PartnerStats:         upstreamURL + "/get-partner-stats",
			PartnerUsers:         upstreamURL + "/get-partner-users-by-partner",
			ResetPartnerPassword: upstreamURL + "/reset-partner-password",
			ResetUserPassword:    upstreamURL + "/reset-user-password",
			UpdateAdmin:          upstreamURL + "/update-admin-data",
			UpdatePartner:        upstreamURL + "/update-partner-data",
			UpdateUser:           upstreamURL + "/update-user-data",
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AddSessionCookie attaches the session cookie for the given role.
func AddSessionCookie(req *http.Request, role, token string) {
	name := models.PartnerCookie
	if role == models.RoleAdmin {
		name = models.AdminCookie
	}
	req.AddCookie(&http.Cookie{Name: name, Value: token})
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorKind checks the error envelope's kind field.
func AssertErrorKind(t *testing.T, w *httptest.ResponseRecorder, kind string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Kind != kind {
		t.Errorf("Expected error kind %q, got %q (message: %s)", kind, resp.Kind, resp.Message)
	}
}
