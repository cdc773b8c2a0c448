// Copyright (c) 2025 Refdash Labs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/refdash/partner-portal/cliparse"
	"github.com/refdash/partner-portal/handlers"
	"github.com/refdash/partner-portal/middleware"
	"github.com/refdash/partner-portal/upstream"
)

func NewRouter(cfg cliparse.Config, up *upstream.Client) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	session := handlers.NewSessionHandler(cfg, up)
	admin := handlers.NewAdminHandler(cfg, up)
	partner := handlers.NewPartnerHandler(cfg, up)
	user := handlers.NewUserHandler(cfg, up)
	stats := handlers.NewStatsHandler(cfg, up)
	referral := handlers.NewReferralHandler(cfg, up)

	// State-changing routes run the strict origin guard, reads the lenient one.
	strict := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.StrictOrigin(cfg, h))
	}
	lenient := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.LenientOrigin(cfg, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /api/custom-login", strict(session.Login))
	mux.HandleFunc("POST /api/logout", strict(session.Logout))

	// Admin accounts
	mux.HandleFunc("POST /api/create-admin", strict(admin.CreateAdmin))
	mux.HandleFunc("PATCH /api/update-admin-data", strict(admin.UpdateAdminData))

	// Partners
	mux.HandleFunc("POST /api/create-partner", strict(partner.CreatePartner))
	mux.HandleFunc("PATCH /api/update-partner-data", strict(partner.UpdatePartnerData))
	mux.HandleFunc("POST /api/reset-partner-password", strict(partner.ResetPassword))

	// Users
	mux.HandleFunc("POST /api/create-user", strict(user.CreateUsers))
	mux.HandleFunc("POST /api/create-user-by-admin", strict(user.CreateUsersByAdmin))
	mux.HandleFunc("PATCH /api/update-user-data", strict(user.UpdateUserData))
	mux.HandleFunc("POST /api/reset-user-password", strict(user.ResetPassword))

	// Dashboards and listings
	mux.HandleFunc("GET /api/get-admin-stats", lenient(stats.AdminStats))
	mux.HandleFunc("GET /api/get-all-partners", lenient(stats.AllPartners))
	mux.HandleFunc("GET /api/get-all-users", lenient(stats.AllUsers))
	mux.HandleFunc("GET /api/get-partner-stats", lenient(stats.PartnerStats))

	// Referrals (dual-access; admin targets a partner via POST body)
	mux.HandleFunc("GET /api/get-partner-users-by-partner", lenient(referral.PartnerUsers))
	mux.HandleFunc("POST /api/get-partner-users-by-partner", strict(referral.PartnerUsers))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("partner-portal API v1"))
	})

	return mux
}
