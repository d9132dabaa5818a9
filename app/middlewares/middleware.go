package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/helpers"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger writes one access log entry per request.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	entry := log.WithField("component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			fields := logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}
			switch {
			case rec.status >= 500:
				entry.WithFields(fields).Error("request")
			case rec.status >= 400:
				entry.WithFields(fields).Warn("request")
			default:
				entry.WithFields(fields).Info("request")
			}
		})
	}
}

// Recoverer turns a panicking handler into a 500.
func Recoverer(log *logrus.Logger, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(logrus.Fields{"component": "http", "path": r.URL.Path, "panic": rec}).Error("handler panicked")
					_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LanguageMiddleware puts the admin's language into the request context.
// The session preference wins over Accept-Language.
func LanguageMiddleware(store sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := store.GetLanguage(r)
			if lang == sessions.DefaultLanguage {
				if accept := strings.SplitN(r.Header.Get("Accept-Language"), ",", 2)[0]; accept != "" {
					accept = strings.ToLower(strings.SplitN(accept, "-", 2)[0])
					if i18n.Supported(accept) {
						lang = accept
					}
				}
			}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if override := r.Header.Get("X-HTTP-Method-Override"); override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
