package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/format"
)

type CustomerRow struct {
	models.Customer
	Name        string `json:"name"`
	SpentLabel  string `json:"spent_label"`
	JoinedLabel string `json:"joined_label"`
}

func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	change, changed, err := listParams(r)
	if err != nil {
		h.badRequest(w, "Invalid page.")
		return
	}
	customers := h.board(r).Customers
	view := customers.View()
	if changed {
		view = customers.Apply(r.Context(), change)
	}

	rows := make([]CustomerRow, 0, len(view.Rows))
	for _, c := range view.Rows {
		rows = append(rows, CustomerRow{
			Customer:    c,
			Name:        c.FullName(),
			SpentLabel:  format.Money(c.TotalSpent),
			JoinedLabel: format.Date(c.CreatedAt),
		})
	}
	_ = h.render.JSON(w, http.StatusOK, dashboard.ListView[CustomerRow]{
		ListParams: view.ListParams,
		Rows:       rows,
		Loading:    view.Loading,
		HasNext:    view.HasNext,
		HasPrev:    view.HasPrev,
		Error:      view.Error,
	})
}
