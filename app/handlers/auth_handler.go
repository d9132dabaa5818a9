package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/renderer"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	auth         services.AuthService
	sessionStore sessions.SessionStore
	registry     *dashboard.Registry
	validator    *validator.Validate
	log          *logrus.Entry
}

func NewAuthHandler(r *render.Render, auth services.AuthService, sessionStore sessions.SessionStore, registry *dashboard.Registry, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		render:       r,
		auth:         auth,
		sessionStore: sessionStore,
		registry:     registry,
		validator:    validator.New(),
		log:          log.WithField("component", "auth_handler"),
	}
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Theme         string `json:"theme"`
	Language      string `json:"language"`
}

func (h *AuthHandler) sessionOf(r *http.Request) SessionResponse {
	return SessionResponse{
		Authenticated: h.sessionStore.IsAuthenticated(r),
		Email:         h.sessionStore.GetUserEmail(r),
		Theme:         h.sessionStore.GetTheme(r),
		Language:      h.sessionStore.GetLanguage(r),
	}
}

// readLogin accepts a JSON body or a classic form post.
func readLogin(r *http.Request) (LoginForm, error) {
	var form LoginForm
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return form, err
	}
	form.Email = r.PostFormValue("email")
	form.Password = r.PostFormValue("password")
	return form, nil
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	form, err := readLogin(r)
	if err != nil {
		h.log.WithError(err).Warn("LoginPostHandler: unreadable body")
		_ = h.render.JSON(w, http.StatusBadRequest, renderer.Error{Error: "Invalid login request."})
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if err := h.validator.Struct(&form); err != nil {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, renderer.Error{Error: "Please enter your email and password."})
		return
	}

	identity, err := h.auth.SignIn(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.log.WithField("email", form.Email).Info("LoginPostHandler: rejected credentials")
			_ = h.render.JSON(w, http.StatusUnauthorized, renderer.Error{Error: "Invalid email or password."})
			return
		}
		h.log.WithError(err).Error("LoginPostHandler: sign in failed")
		_ = h.render.JSON(w, http.StatusBadGateway, renderer.Error{Error: "Sign in is unavailable. Please try again."})
		return
	}

	if err := h.sessionStore.SignIn(w, r, identity.Email); err != nil {
		h.log.WithError(err).Error("LoginPostHandler: failed to save session")
		_ = h.render.JSON(w, http.StatusInternalServerError, renderer.Error{Error: "Failed to create login session."})
		return
	}
	h.log.WithField("email", identity.Email).Info("admin signed in")
	_ = h.render.JSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		Email:         identity.Email,
		Theme:         h.sessionStore.GetTheme(r),
		Language:      h.sessionStore.GetLanguage(r),
	})
}

// LogoutHandler ends the session and drops its dashboard.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if id := h.sessionStore.GetDashboardID(r); id != "" {
		h.registry.Remove(id)
	}
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		h.log.WithError(err).Error("LogoutHandler: failed to clear session")
	}
	_ = h.render.JSON(w, http.StatusOK, SessionResponse{
		Theme:    h.sessionStore.GetTheme(r),
		Language: h.sessionStore.GetLanguage(r),
	})
}

func (h *AuthHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, h.sessionOf(r))
}

func (h *AuthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
