// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"regexp"
	"strings"

	"github.com/refdash/partner-portal/models"
)

// emailPattern is deliberately lax: something, @, something, dot, something,
// with no whitespace or extra @ in any part. Tightening it would reject
// addresses the system has already accepted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s passes the permissive address check.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// defaultRegion is applied to self-service user records that carry none.
const defaultRegion = "India"

// normalizeUsers flattens the polymorphic create-user input into a uniform
// user list. Invalid addresses are dropped; the caller rejects the request
// only when nothing valid remains.
func normalizeUsers(req models.CreateUsersRequest) []models.UserSpec {
	out := make([]models.UserSpec, 0, len(req.Users)+len(req.Emails))
	for _, u := range req.Users {
		u.Email = strings.TrimSpace(u.Email)
		if !ValidEmail(u.Email) {
			continue
		}
		if u.Region == "" {
			u.Region = regionOrDefault(req.Region)
		}
		out = append(out, u)
	}
	for _, email := range req.Emails {
		email = strings.TrimSpace(email)
		if !ValidEmail(email) {
			continue
		}
		out = append(out, models.UserSpec{Email: email, Region: regionOrDefault(req.Region)})
	}
	return out
}

func regionOrDefault(region string) string {
	if region != "" {
		return region
	}
	return defaultRegion
}
