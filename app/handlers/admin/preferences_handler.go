package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/renderer"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
)

type preferenceRequest struct {
	Value string `json:"value"`
}

type PreferencesResponse struct {
	Theme    string            `json:"theme"`
	Language string            `json:"language"`
	Labels   map[string]string `json:"labels"`
}

func (h *AdminHandler) preferences(w http.ResponseWriter, r *http.Request, theme, lang string) {
	_ = h.render.JSON(w, http.StatusOK, PreferencesResponse{
		Theme:    theme,
		Language: lang,
		Labels:   h.translator.Messages(lang),
	})
}

func (h *AdminHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := decode(r, &req); err != nil || (req.Value != sessions.ThemeLight && req.Value != sessions.ThemeDark) {
		h.badRequest(w, "Theme must be light or dark.")
		return
	}
	if err := h.sessionStore.SetTheme(w, r, req.Value); err != nil {
		h.log.WithError(err).Error("SetTheme: failed to save session")
		_ = h.render.JSON(w, http.StatusInternalServerError, renderer.Error{Error: "Failed to save preference."})
		return
	}
	h.preferences(w, r, req.Value, h.sessionStore.GetLanguage(r))
}

func (h *AdminHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := decode(r, &req); err != nil || !i18n.Supported(req.Value) {
		h.badRequest(w, "Unsupported language.")
		return
	}
	if err := h.sessionStore.SetLanguage(w, r, req.Value); err != nil {
		h.log.WithError(err).Error("SetLanguage: failed to save session")
		_ = h.render.JSON(w, http.StatusInternalServerError, renderer.Error{Error: "Failed to save preference."})
		return
	}
	h.preferences(w, r, h.sessionStore.GetTheme(r), req.Value)
}
