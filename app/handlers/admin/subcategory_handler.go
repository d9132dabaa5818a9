package admin

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/gorilla/mux"
)

type SubcategoryListResponse struct {
	CategoryID int64                   `json:"category_id"`
	Rows       []dashboard.Subcategory `json:"rows"`
}

func (h *AdminHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.badRequest(w, "Invalid category id.")
		return
	}
	rows, err := h.board(r).SubcategoriesOf(r.Context(), categoryID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, SubcategoryListResponse{CategoryID: categoryID, Rows: rows})
}
