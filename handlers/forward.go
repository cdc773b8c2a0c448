// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/refdash/partner-portal/middleware"
	"github.com/refdash/partner-portal/models"
	"github.com/refdash/partner-portal/upstream"
)

// relay sends the outcome of an upstream call back to the browser:
// transport errors map to their error kind, non-2xx responses pass the
// upstream status through with an extracted message, and 2xx responses
// (including 207) relay status and body untouched.
func relay(w http.ResponseWriter, res *upstream.Response, err error) {
	if err != nil {
		slog.Error("upstream call failed", "error", err)
		switch {
		case errors.Is(err, upstream.ErrMisconfigured):
			middleware.ErrorResponse(w, http.StatusInternalServerError,
				models.KindServerMisconfigured, "server configuration incomplete")
		case errors.Is(err, upstream.ErrTimeout):
			middleware.ErrorResponse(w, http.StatusGatewayTimeout,
				models.KindUpstreamTimeout, "upstream request timed out")
		default:
			middleware.ErrorResponse(w, http.StatusBadGateway,
				models.KindUpstreamUnreachable, "upstream request failed")
		}
		return
	}
	if !res.OK() {
		middleware.ErrorResponse(w, res.Status, models.KindUpstreamError, res.ErrorMessage())
		return
	}
	middleware.RawResponse(w, res.Status, res.Body)
}
