package admin

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/calc"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/format"
	"github.com/gorilla/mux"
)

// listParams applies the page, status and q query parameters that are
// present. It reports false when none was given.
func listParams(r *http.Request) (func(*dashboard.ListParams), bool, error) {
	q := r.URL.Query()
	var page int
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, false, err
		}
		page = p
	}
	_, hasPage := q["page"]
	_, hasStatus := q["status"]
	_, hasSearch := q["q"]

	change := func(p *dashboard.ListParams) {
		if hasPage {
			p.Page = page
		}
		if hasStatus {
			p.Status = q.Get("status")
		}
		if hasSearch {
			p.Search = q.Get("q")
		}
	}
	return change, hasPage || hasStatus || hasSearch, nil
}

type OrderRow struct {
	models.Order
	CustomerName string `json:"customer_name"`
	TotalLabel   string `json:"total_label"`
	DateLabel    string `json:"date_label"`
}

type OrderListResponse struct {
	dashboard.ListView[OrderRow]
	Statuses []string `json:"statuses"`
}

func orderRow(o models.Order) OrderRow {
	row := OrderRow{Order: o, TotalLabel: format.Money(o.TotalAmount), DateLabel: format.Date(o.CreatedAt)}
	if o.Customer != nil {
		row.CustomerName = o.Customer.FullName()
	}
	return row
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	change, changed, err := listParams(r)
	if err != nil {
		h.badRequest(w, "Invalid page.")
		return
	}
	orders := h.board(r).Orders
	view := orders.View()
	if changed {
		view = orders.Apply(r.Context(), change)
	}

	rows := make([]OrderRow, 0, len(view.Rows))
	for _, o := range view.Rows {
		rows = append(rows, orderRow(o))
	}
	_ = h.render.JSON(w, http.StatusOK, OrderListResponse{
		ListView: dashboard.ListView[OrderRow]{
			ListParams: view.ListParams,
			Rows:       rows,
			Loading:    view.Loading,
			HasNext:    view.HasNext,
			HasPrev:    view.HasPrev,
			Error:      view.Error,
		},
		Statuses: models.OrderStatuses,
	})
}

type OrderItemRow struct {
	models.OrderItem
	UnitPriceLabel string `json:"unit_price_label"`
	LineTotalLabel string `json:"line_total_label"`
}

type OrderDetailsResponse struct {
	OrderRow
	Items         []OrderItemRow `json:"items"`
	SubtotalLabel string         `json:"subtotal_label"`
}

func (h *AdminHandler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.badRequest(w, "Invalid order id.")
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.board(r).OrderDetails(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	items := make([]OrderItemRow, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemRow{
			OrderItem:      it,
			UnitPriceLabel: format.Money(it.UnitPrice),
			LineTotalLabel: format.Money(it.LineTotal),
		})
	}
	_ = h.render.JSON(w, http.StatusOK, OrderDetailsResponse{
		OrderRow:      orderRow(*order),
		Items:         items,
		SubtotalLabel: format.Money(calc.ItemsTotal(order.Items)),
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body.")
		return
	}
	order, err := h.board(r).UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orderRow(*order))
}
