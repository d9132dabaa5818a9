package dashboard

import (
	"context"
	"strings"
	"sync"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/sirupsen/logrus"
)

const (
	PageSize  = 10
	StatusAll = "all"
)

type ListParams struct {
	Page   int    `json:"page"`
	Status string `json:"status"`
	Search string `json:"search"`
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Status == "" {
		p.Status = StatusAll
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

type ListView[T any] struct {
	ListParams
	Rows    []T    `json:"rows"`
	Loading bool   `json:"loading"`
	HasNext bool   `json:"has_next"`
	HasPrev bool   `json:"has_prev"`
	Error   string `json:"error,omitempty"`
}

type QueryBuilder func(ListParams) gateway.Query

type RowFetcher[T any] func(ctx context.Context, q gateway.Query) ([]T, error)

// ListController pages through one server-side filtered list. Every
// refresh gets a sequence number and cancels the one before it, and only
// the newest refresh may write rows.
type ListController[T any] struct {
	mu      sync.Mutex
	name    string
	params  ListParams
	rows    []T
	loading bool
	err     string
	seq     uint64
	cancel  context.CancelFunc
	build   QueryBuilder
	fetch   RowFetcher[T]
	log     *logrus.Entry
}

func NewListController[T any](name string, build QueryBuilder, fetch RowFetcher[T], log *logrus.Logger) *ListController[T] {
	return &ListController[T]{
		name:   name,
		params: ListParams{}.normalized(),
		rows:   []T{},
		build:  build,
		fetch:  fetch,
		log:    log.WithFields(logrus.Fields{"component": "list_controller", "list": name}),
	}
}

func (c *ListController[T]) View() ListView[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *ListController[T]) viewLocked() ListView[T] {
	rows := make([]T, len(c.rows))
	copy(rows, c.rows)
	return ListView[T]{
		ListParams: c.params,
		Rows:       rows,
		Loading:    c.loading,
		HasNext:    c.err == "" && len(c.rows) >= PageSize,
		HasPrev:    c.params.Page > 1,
		Error:      c.err,
	}
}

// Apply changes the parameters and refetches with them.
func (c *ListController[T]) Apply(ctx context.Context, change func(*ListParams)) ListView[T] {
	c.mu.Lock()
	p := c.params
	change(&p)
	c.params = p.normalized()
	c.mu.Unlock()
	return c.Refresh(ctx)
}

func (c *ListController[T]) SetPage(ctx context.Context, page int) ListView[T] {
	return c.Apply(ctx, func(p *ListParams) { p.Page = page })
}

func (c *ListController[T]) SetStatus(ctx context.Context, status string) ListView[T] {
	return c.Apply(ctx, func(p *ListParams) { p.Status = status })
}

func (c *ListController[T]) SetSearch(ctx context.Context, search string) ListView[T] {
	return c.Apply(ctx, func(p *ListParams) { p.Search = search })
}

func (c *ListController[T]) Refresh(ctx context.Context) ListView[T] {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	q := c.build(c.params)
	c.loading = true
	c.mu.Unlock()

	rows, err := c.fetch(fetchCtx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()
	if seq != c.seq {
		// a newer refresh owns the list now
		return c.viewLocked()
	}
	c.cancel = nil
	c.loading = false
	if err != nil {
		c.log.WithError(err).Error("list fetch failed")
		c.err = "Failed to load " + c.name
		return c.viewLocked()
	}
	if rows == nil {
		rows = []T{}
	}
	c.rows = rows
	c.err = ""
	return c.viewLocked()
}

func BuildOrdersQuery(p ListParams) gateway.Query {
	p = p.normalized()
	q := gateway.Query{
		Table:    "orders",
		Columns:  []string{"orders.*"},
		Joins:    []string{"LEFT JOIN customers ON customers.id = orders.customer_id"},
		Preloads: []string{"Customer"},
		Order:    []gateway.Order{{Column: "orders.created_at"}},
		Range:    gateway.PageRange(p.Page, PageSize),
	}
	if p.Status != StatusAll {
		q.Filters = append(q.Filters, gateway.EqualTo("orders.status", p.Status))
	}
	if p.Search != "" {
		q.AnyOf = []gateway.Filter{
			gateway.Matches("orders.order_number", p.Search),
			gateway.Matches("customers.first_name", p.Search),
			gateway.Matches("customers.last_name", p.Search),
		}
	}
	return q
}

func BuildCustomersQuery(p ListParams) gateway.Query {
	p = p.normalized()
	q := gateway.Query{
		Table: "customers",
		Order: []gateway.Order{{Column: "created_at"}},
		Range: gateway.PageRange(p.Page, PageSize),
	}
	if p.Status != StatusAll {
		q.Filters = append(q.Filters, gateway.EqualTo("status", p.Status))
	}
	if p.Search != "" {
		q.AnyOf = []gateway.Filter{
			gateway.Matches("first_name", p.Search),
			gateway.Matches("last_name", p.Search),
			gateway.Matches("email", p.Search),
		}
	}
	return q
}
