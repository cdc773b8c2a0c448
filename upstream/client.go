// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/refdash/partner-portal/auth"
	"github.com/refdash/partner-portal/cliparse"
)

var (
	// ErrMisconfigured means the service credential or the operation's URL
	// is absent from configuration. Fails closed; never reaches the network.
	ErrMisconfigured = errors.New("upstream: missing configuration")
	// ErrTimeout means the upstream call exceeded the configured deadline.
	ErrTimeout = errors.New("upstream: request timed out")
	// ErrUnreachable covers transport failures and unreadable responses.
	ErrUnreachable = errors.New("upstream: request failed")
)

// Client executes outbound calls to the upstream function gateway. Safe for
// concurrent use; one instance is shared by all handlers.
type Client struct {
	http       *http.Client
	credential string
}

func NewClient(cfg cliparse.Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.UpstreamTimeout,
			// Don't follow redirects; return them to the caller.
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		credential: cfg.ServiceCredential,
	}
}

// Request describes one outbound call. Token is nil only for the login
// function, which authenticates with the service credential alone.
type Request struct {
	Method string
	URL    string
	Token  *auth.Credential
	Query  url.Values
	Body   any // marshaled unless already json.RawMessage / []byte
}

// Response is the upstream's status and raw JSON body. The body is relayed
// to the browser untouched on success.
type Response struct {
	Status int
	Body   json.RawMessage
}

// OK reports whether the status is in the 2xx range. 207 multi-status
// counts as success and is passed through with its status preserved.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// ErrorMessage extracts a human-readable message from a failed response
// body, preferring "message" over "error", with a fixed fallback when the
// body is not parseable.
func (r *Response) ErrorMessage() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "upstream request failed"
}

// Do executes the call. The header contract is fixed: Content-Type JSON,
// Authorization carrying the raw service credential (no prefix is added; a
// required Bearer prefix must already be embedded in the configured value),
// and exactly one of Admin-Token / Partner-Token when a session token is
// attached. ctx is the inbound request context, so a dropped client
// connection aborts the outbound call.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.credential == "" || req.URL == "" {
		return nil, ErrMisconfigured
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := encodeBody(req.Body)
		if err != nil {
			return nil, fmt.Errorf("upstream: encode body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	target := req.URL
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", err)
	}
	hr.Header.Set("Content-Type", "application/json")
	hr.Header.Set("Authorization", c.credential)
	if req.Token != nil {
		hr.Header.Set(req.Token.Header(), req.Token.Token)
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}

func encodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(v)
	}
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
