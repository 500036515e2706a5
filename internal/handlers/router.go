package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/otcheredev/hospital-console/internal/apiclient"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/navigation"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuditStore is the console audit trail
type AuditStore interface {
	AuditWriter
	AuditReader
}

// RouterDeps are the collaborators of the console router
type RouterDeps struct {
	Resolver   *runtimeconfig.Resolver
	Store      store.Store
	Client     *apiclient.Client
	Navigation *navigation.Registry
	// Audit is nil when no database is configured
	Audit     AuditStore
	Health    map[string]Pinger
	JWTSecret []byte
	JWTIssuer string
	CORS      cors.Options
	Metrics   bool
}

// NewRouter assembles the console HTTP surface
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))
	r.Use(cors.Handler(d.CORS))

	health := NewHealthHandler(d.Health)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	if d.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	var audit AuditWriter
	if d.Audit != nil {
		audit = d.Audit
	}
	api := NewAPI(d.Client, audit)
	rt := NewRuntimeHandler(d.Resolver)
	nav := NewNavigationHandler(d.Navigation)
	authn := middleware.NewAuthenticator(d.JWTSecret, d.JWTIssuer)
	session := NewSessionHandler(authn)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RuntimeConfig(d.Resolver, d.Store))

		// Branding and tier are needed before sign-in
		r.Get("/runtime", rt.Get)
		r.Put("/runtime/override", rt.SetOverride)
		r.Delete("/runtime/override", rt.ClearOverride)

		r.Put("/session/token", session.SetToken)
		r.Delete("/session/token", session.ClearToken)

		r.Group(func(r chi.Router) {
			r.Use(authn.Middleware)

			r.Get("/navigation", nav.Get)
			api.Mount(r)

			if d.Audit != nil {
				ca := NewConsoleAuditHandler(d.Audit)
				r.With(
					middleware.RequireFeature(features.SecurityLogs),
					middleware.RequireRole(features.RoleAdmin, features.RoleDoctor),
				).Get("/console/audit-logs", ca.List)
			}
		})
	})

	return r
}
