package middlewares

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/helpers"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type contextKey string

const dashboardKey contextKey = "dashboard"

// AdminAuthMiddleware rejects requests without a signed-in admin session.
func AdminAuthMiddleware(store sessions.SessionStore, rnd *render.Render, log *logrus.Logger) func(http.Handler) http.Handler {
	entry := log.WithField("component", "auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.IsAuthenticated(r) {
				entry.WithField("path", r.URL.Path).Debug("request without admin session")
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Please sign in to access the admin dashboard."})
				return
			}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserEmail, store.GetUserEmail(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DashboardMiddleware attaches the session's Dashboard to the request. A
// session seen for the first time gets a new dashboard that is loaded
// before the handler runs.
func DashboardMiddleware(store sessions.SessionStore, registry *dashboard.Registry, log *logrus.Logger) func(http.Handler) http.Handler {
	entry := log.WithField("component", "dashboard_session")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := store.GetDashboardID(r)
			if id == "" {
				id = dashboard.NewID()
				if err := store.SetDashboardID(w, r, id); err != nil {
					entry.WithError(err).Error("failed to store dashboard id")
				}
			}

			d, created := registry.Get(id)
			if created {
				entry.WithField("dashboard_id", id).Info("dashboard created")
				d.LoadAll(context.WithoutCancel(r.Context()))
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyDashboardID, id)
			ctx = context.WithValue(ctx, dashboardKey, d)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func DashboardFrom(ctx context.Context) *dashboard.Dashboard {
	d, _ := ctx.Value(dashboardKey).(*dashboard.Dashboard)
	return d
}

// WithDashboard is used by tests that bypass the session.
func WithDashboard(ctx context.Context, d *dashboard.Dashboard) context.Context {
	return context.WithValue(ctx, dashboardKey, d)
}
