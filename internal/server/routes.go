package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"controlcompass/internal/config"
	"controlcompass/internal/db"
	"controlcompass/internal/email"
	"controlcompass/internal/handlers"
	"controlcompass/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, catalog *config.Catalog, notifier *email.Notifier) error {
	authMiddleware := middleware.NewAuthMiddleware(s.Store, database)

	companyHandler := handlers.NewCompanyHandler(database, catalog)
	manageHandler := handlers.NewCompanyManageHandler(database, notifier)
	adminHandler := handlers.NewAdminHandler(database, notifier)
	profileHandler := handlers.NewProfileHandler(database)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is required for any write access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. Submissions and moderation need authenticated users.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Public directory
	s.App.Get("/api/companies", companyHandler.List)
	s.App.Get("/api/companies/filters", companyHandler.Filters)
	s.App.Get("/api/companies/:slug", companyHandler.GetBySlug)

	// Authenticated routes
	s.App.Post("/api/company", authMiddleware.RequireAuth, manageHandler.Create)
	s.App.Post("/api/company/:id", authMiddleware.RequireAuth, manageHandler.Update)
	s.App.Get("/api/my/companies", authMiddleware.RequireAuth, manageHandler.MyCompanies)
	s.App.Post("/api/profile/update", authMiddleware.RequireAuth, profileHandler.Update)

	// Admin routes
	s.App.Get("/api/admin/companies", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, adminHandler.Pending)
	s.App.Post("/api/admin/companies/approve", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, adminHandler.Approve)
	s.App.Post("/api/admin/companies/reject", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, adminHandler.Reject)

	// Ops
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
