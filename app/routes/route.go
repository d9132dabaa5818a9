package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/handlers"
	"github.com/Rakhulsr/go-admin-dashboard/app/handlers/admin"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/middlewares"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type Dependencies struct {
	Render       *render.Render
	SessionStore sessions.SessionStore
	Auth         services.AuthService
	Registry     *dashboard.Registry
	Translator   *i18n.Translator
	Log          *logrus.Logger

	// CSRFKey turns on CSRF protection when set.
	CSRFKey      []byte
	SecureCookie bool
}

func NewRouter(deps Dependencies) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares.Recoverer(deps.Log, deps.Render), middlewares.RequestLogger(deps.Log))

	authHandler := handlers.NewAuthHandler(deps.Render, deps.Auth, deps.SessionStore, deps.Registry, deps.Log)
	adminHandler := admin.NewAdminHandler(deps.Render, deps.SessionStore, deps.Translator, deps.Log)

	router.HandleFunc("/healthz", authHandler.Healthz).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")
	router.HandleFunc("/api/session", authHandler.SessionHandler).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(
		middlewares.AdminAuthMiddleware(deps.SessionStore, deps.Render, deps.Log),
		middlewares.LanguageMiddleware(deps.SessionStore),
		middlewares.DashboardMiddleware(deps.SessionStore, deps.Registry, deps.Log),
	)

	api.HandleFunc("/dashboard", adminHandler.GetDashboard).Methods("GET")
	api.HandleFunc("/dashboard/reload", adminHandler.Reload).Methods("POST")
	api.HandleFunc("/dashboard/section", adminHandler.SetSection).Methods("POST")
	api.HandleFunc("/dashboard/schema-warning/dismiss", adminHandler.DismissSchemaWarning).Methods("POST")

	api.HandleFunc("/modal", adminHandler.OpenModal).Methods("POST")
	api.HandleFunc("/modal", adminHandler.CloseModal).Methods("DELETE")
	api.HandleFunc("/form", adminHandler.UpdateForm).Methods("PATCH")
	api.HandleFunc("/save", adminHandler.Save).Methods("POST")
	api.HandleFunc("/entities/{kind}/{id:[0-9]+}", adminHandler.DeleteEntity).Methods("DELETE")
	api.HandleFunc("/media/{field}", adminHandler.UploadMedia).Methods("POST")
	api.HandleFunc("/media/{field}/{index:[0-9]+}", adminHandler.RemoveMedia).Methods("DELETE")

	api.HandleFunc("/categories/{id:[0-9]+}/subcategories", adminHandler.ListSubcategories).Methods("GET")

	api.HandleFunc("/orders", adminHandler.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}", adminHandler.OrderDetails).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}/status", adminHandler.UpdateOrderStatus).Methods("PATCH")
	api.HandleFunc("/customers", adminHandler.ListCustomers).Methods("GET")

	api.HandleFunc("/preferences/theme", adminHandler.SetTheme).Methods("POST")
	api.HandleFunc("/preferences/language", adminHandler.SetLanguage).Methods("POST")

	var handler http.Handler = router
	if len(deps.CSRFKey) > 0 {
		protect := csrf.Protect(deps.CSRFKey,
			csrf.Secure(deps.SecureCookie),
			csrf.Path("/"),
			csrf.RequestHeader("X-CSRF-Token"),
		)
		router.Use(csrfTokenHeader)
		handler = protect(handler)
		if !deps.SecureCookie {
			handler = plaintext(handler)
		}
	}
	// the override has to happen before the router matches on method
	return middlewares.MethodOverrideMiddleware(handler)
}

// csrfTokenHeader hands the client the token to send back on writes.
func csrfTokenHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CSRF-Token", csrf.Token(r))
		next.ServeHTTP(w, r)
	})
}

// plaintext marks requests as served over http so the origin check does
// not expect an https referer.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
