package admin

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/gorilla/mux"
)

type modalRequest struct {
	Mode string `json:"mode"`
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func (h *AdminHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	var req modalRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body.")
		return
	}
	if err := h.board(r).OpenModal(dashboard.ModalMode(req.Mode), dashboard.Kind(req.Kind), req.ID); err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

func (h *AdminHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.board(r).CloseModal()
	h.respond(w, r, http.StatusOK)
}

// UpdateForm sets every field of the body on the open form.
func (h *AdminHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := decode(r, &fields); err != nil {
		h.badRequest(w, "Invalid request body.")
		return
	}
	d := h.board(r)
	for field, value := range fields {
		if err := d.SetField(field, value); err != nil {
			h.writeError(w, err)
			return
		}
	}
	h.respond(w, r, http.StatusOK)
}

func (h *AdminHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.board(r).Save(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

// DeleteEntity needs ?confirm=true. Without it nothing is sent.
func (h *AdminHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.badRequest(w, "Invalid id.")
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	if err := h.board(r).Delete(r.Context(), dashboard.Kind(vars["kind"]), id, confirmed); err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}
