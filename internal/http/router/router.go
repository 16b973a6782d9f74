// Package router assembles the HTTP surface: ambient middleware chain,
// role-gated API routes and the operational endpoints.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	keuctrl "github.com/pondokdigital/pesantren-api/internal/http/controllers/keuangan"
	rolesctrl "github.com/pondokdigital/pesantren-api/internal/http/controllers/roles"
	santrictrl "github.com/pondokdigital/pesantren-api/internal/http/controllers/santri"
	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	mw "github.com/pondokdigital/pesantren-api/internal/http/middlewares"
	rolessvc "github.com/pondokdigital/pesantren-api/internal/http/services/roles"

	"github.com/pondokdigital/pesantren-api/internal/health"
	"github.com/pondokdigital/pesantren-api/internal/identity"
	"github.com/pondokdigital/pesantren-api/internal/keuangan"
	"github.com/pondokdigital/pesantren-api/internal/metrics"
	"github.com/pondokdigital/pesantren-api/internal/profile"
	"github.com/pondokdigital/pesantren-api/internal/rate"
	"github.com/pondokdigital/pesantren-api/internal/rbac"
	"github.com/pondokdigital/pesantren-api/internal/santri"
)

// Deps carries everything the router wires together.
type Deps struct {
	Resolver identity.Resolver
	Profiles profile.Store
	Santri   santri.Store
	Keuangan keuangan.Store

	Monitor        *health.Monitor
	MetricsHandler http.Handler

	CORSAllowedOrigins []string

	// GlobalLimiter applies per client IP across the API; SwitchLimiter is
	// the tighter per-user limit on the role-switch endpoint. Either may be
	// nil to disable.
	GlobalLimiter rate.Limiter
	SwitchLimiter rate.Limiter
}

// New builds the full handler tree.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithRecover())
	r.Use(mw.WithCORS(deps.CORSAllowedOrigins))
	r.Use(mw.WithLogging())
	r.Use(metrics.WithMetrics)
	if deps.GlobalLimiter != nil {
		r.Use(mw.WithRateLimit(mw.RateLimitConfig{Limiter: deps.GlobalLimiter}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	requireAuth := mw.RequireAuth(deps.Resolver, deps.Profiles)
	requireRole := func(roles ...rbac.Role) mw.Middleware {
		return mw.RequireRole(deps.Resolver, deps.Profiles, roles...)
	}

	roles := rolesctrl.NewController(rolessvc.NewService(rolessvc.Deps{Store: deps.Profiles}))
	r.Route("/api/roles", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", roles.Me)
		r.Get("/dashboard-redirect", roles.DashboardRedirect)
		r.Get("/menu", roles.Menu)

		sw := r.With()
		if deps.SwitchLimiter != nil {
			sw = r.With(mw.WithRateLimit(mw.RateLimitConfig{
				Limiter: deps.SwitchLimiter,
				KeyFunc: mw.UserRateKey,
			}))
		}
		sw.Post("/switch", roles.Switch)
	})

	if deps.Santri != nil {
		ctrl := santrictrl.NewController(deps.Santri)
		r.With(requireRole(rbac.RoleAdmin)).
			Get("/api/santri", ctrl.List)
	}

	if deps.Keuangan != nil {
		ctrl := keuctrl.NewController(deps.Keuangan)
		r.With(requireRole(rbac.RoleAdmin, rbac.RoleBendahara, rbac.RolePengasuh)).
			Get("/api/keuangan/summary", ctrl.Summary)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if deps.Monitor == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		status := deps.Monitor.Last()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
