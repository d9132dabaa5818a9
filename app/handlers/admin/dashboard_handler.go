package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
)

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK)
}

// Reload refetches every collection. Results of an older reload still in
// flight are dropped.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.board(r).LoadAll(r.Context())
	h.respond(w, r, http.StatusOK)
}

type sectionRequest struct {
	Section string `json:"section"`
}

func (h *AdminHandler) SetSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body.")
		return
	}
	section, err := dashboard.ParseSection(req.Section)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	h.board(r).SetSection(section)
	h.respond(w, r, http.StatusOK)
}

func (h *AdminHandler) DismissSchemaWarning(w http.ResponseWriter, r *http.Request) {
	h.board(r).DismissSchemaWarning()
	h.respond(w, r, http.StatusOK)
}
