package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/helpers"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/middlewares"
	"github.com/Rakhulsr/go-admin-dashboard/app/repositories"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/format"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/renderer"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	sessionStore sessions.SessionStore
	translator   *i18n.Translator
	log          *logrus.Entry
}

func NewAdminHandler(r *render.Render, sessionStore sessions.SessionStore, translator *i18n.Translator, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		render:       r,
		sessionStore: sessionStore,
		translator:   translator,
		log:          log.WithField("component", "admin_handler"),
	}
}

// DashboardResponse is the dashboard as the client renders it. Notices are
// handed out once.
type DashboardResponse struct {
	dashboard.View
	Notices      []dashboard.Notice `json:"notices"`
	RevenueLabel string             `json:"revenue_label"`
	Labels       map[string]string  `json:"labels"`
	Language     string             `json:"language"`
	Theme        string             `json:"theme"`
}

func language(r *http.Request) string {
	if lang, ok := r.Context().Value(helpers.ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.LangEnglish
}

func (h *AdminHandler) board(r *http.Request) *dashboard.Dashboard {
	return middlewares.DashboardFrom(r.Context())
}

func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, status int) {
	d := h.board(r)
	view := d.Snapshot()
	lang := language(r)
	_ = h.render.JSON(w, status, DashboardResponse{
		View:         view,
		Notices:      d.DrainNotices(),
		RevenueLabel: format.Money(view.Stats.TotalRevenue),
		Labels:       h.translator.Messages(lang),
		Language:     lang,
		Theme:        h.sessionStore.GetTheme(r),
	})
}

func decode(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

func (h *AdminHandler) badRequest(w http.ResponseWriter, message string) {
	_ = h.render.JSON(w, http.StatusBadRequest, renderer.Error{Error: message})
}

// writeError maps a dashboard failure to a status code. The message is the
// one the admin was already notified with.
func (h *AdminHandler) writeError(w http.ResponseWriter, err error) {
	var (
		ve *dashboard.ValidationError
		se *dashboard.SaveError
	)
	switch {
	case errors.As(err, &ve):
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, renderer.Error{Error: ve.Message, Fields: ve.Fields})
		return
	case errors.As(err, &se):
		_ = h.render.JSON(w, saveStatus(se), renderer.Error{Error: se.Message})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dashboard.ErrConfirmationRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, dashboard.ErrNoActiveForm):
		status = http.StatusConflict
	case errors.Is(err, dashboard.ErrEntityNotFound), gateway.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, dashboard.ErrUnknownKind),
		errors.Is(err, dashboard.ErrInvalidModal),
		errors.Is(err, services.ErrUnknownMediaField),
		errors.Is(err, repositories.ErrInvalidOrderStatus):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	}
	_ = h.render.JSON(w, status, renderer.Error{Error: err.Error()})
}

func saveStatus(se *dashboard.SaveError) int {
	switch gateway.KindOf(se) {
	case gateway.KindDuplicate:
		return http.StatusConflict
	case gateway.KindPermission:
		return http.StatusForbidden
	case gateway.KindForeignKey:
		return http.StatusUnprocessableEntity
	case gateway.KindNotFound:
		return http.StatusNotFound
	case gateway.KindSchemaDrift:
		return http.StatusConflict
	}
	return http.StatusBadGateway
}
