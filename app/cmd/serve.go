package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/configs"
	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/routes"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/renderer"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = 10 * time.Minute
	dashboardIdle   = 2 * time.Hour
)

// probeCapabilities checks once which optional columns the schema has.
func probeCapabilities(db *gorm.DB, log *logrus.Logger) (*gateway.DB, *gateway.Capabilities) {
	gw := gateway.NewDB(db, log)
	caps := gateway.NewCapabilities(nil)
	caps.ProbeColumns(gw, gateway.MediaColumns, models.ProductTable, models.ProductMediaColumns...)
	return gw, caps
}

func authService(env configs.ENV, log *logrus.Logger) (services.AuthService, error) {
	switch env.AuthMode {
	case configs.AuthModeLocal:
		if env.AdminEmail == "" || env.AdminPasswordHash == "" {
			return nil, errors.New("AUTH_MODE=local needs ADMIN_EMAIL and ADMIN_PASSWORD_HASH")
		}
		return services.NewLocalAuth(env.AdminEmail, env.AdminPasswordHash), nil
	case configs.AuthModeSupabase:
		if env.SupabaseURL == "" || env.SupabaseKey == "" {
			return nil, errors.New("AUTH_MODE=supabase needs SUPABASE_URL and SUPABASE_KEY")
		}
		return services.NewSupabaseAuth(env.SupabaseURL, env.SupabaseKey, log), nil
	}
	return nil, fmt.Errorf("unsupported AUTH_MODE %q", env.AuthMode)
}

// sessionKeys falls back to throwaway keys in development. Sessions then
// end with the process.
func sessionKeys(env configs.ENV, log *logrus.Logger) (*configs.SessionKeys, error) {
	keys, err := configs.LoadSessionKeysFromEnv(env)
	if err == nil {
		return keys, nil
	}
	if !env.IsDevelopment() {
		return nil, err
	}
	log.WithError(err).Warn("using temporary session keys, run generate-keys to persist sessions")
	return configs.NewSessionKeys()
}

// Serve wires the dashboard service and blocks until ctx is cancelled or
// the process receives SIGINT or SIGTERM.
func Serve(ctx context.Context, env configs.ENV, log *logrus.Logger) error {
	db, err := configs.OpenConnection(env, log)
	if err != nil {
		return err
	}
	gw, caps := probeCapabilities(db, log)

	auth, err := authService(env, log)
	if err != nil {
		return err
	}
	keys, err := sessionKeys(env, log)
	if err != nil {
		return err
	}

	tr, err := i18n.New()
	if err != nil {
		return err
	}
	val, err := dashboard.NewValidator(tr)
	if err != nil {
		return err
	}

	storage := gateway.NewStorage(env.SupabaseURL, env.SupabaseKey, log)
	uploader := services.NewMediaUploader(storage, env.StorageBucket, log)
	repos := dashboard.NewRepositories(gw, caps, log)
	registry := dashboard.NewRegistry(func() *dashboard.Dashboard {
		return dashboard.New(repos, uploader, val, log)
	})

	secure := !env.IsDevelopment()
	handler := routes.NewRouter(routes.Dependencies{
		Render:       renderer.New(env.IsDevelopment()),
		SessionStore: sessions.NewCookieSessionStore(log, secure, keys.AuthKey, keys.EncKey),
		Auth:         auth,
		Registry:     registry,
		Translator:   tr,
		Log:          log,
		CSRFKey:      configs.DecodeCSRFKey(env.CSRFKey),
		SecureCookie: secure,
	})

	server := &http.Server{
		Addr:              ":" + env.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go registry.Sweep(ctx, sweepInterval, dashboardIdle, func(n int) {
		log.WithField("evicted", n).Info("idle dashboards evicted")
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":         server.Addr,
			"auth_mode":    env.AuthMode,
			"media_column": caps.Has(gateway.MediaColumns),
		}).Info("server starting")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
