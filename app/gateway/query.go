package gateway

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Op string

const (
	OpEq    Op = "eq"
	OpILike Op = "ilike"
)

type Filter struct {
	Column string
	Op     Op
	Value  interface{}
}

func EqualTo(column string, value interface{}) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Matches is a case-insensitive substring match.
func Matches(column, term string) Filter {
	return Filter{Column: column, Op: OpILike, Value: term}
}

func (f Filter) clause() (string, interface{}) {
	switch f.Op {
	case OpILike:
		term := fmt.Sprintf("%%%v%%", f.Value)
		return fmt.Sprintf("LOWER(%s) LIKE ?", f.Column), strings.ToLower(term)
	default:
		return fmt.Sprintf("%s = ?", f.Column), f.Value
	}
}

type Order struct {
	Column    string
	Ascending bool
}

func (o Order) String() string {
	if o.Ascending {
		return o.Column + " ASC"
	}
	return o.Column + " DESC"
}

// Range is an inclusive row window, From..To.
type Range struct {
	From int
	To   int
}

func (r Range) Limit() int {
	return r.To - r.From + 1
}

// PageRange returns the window of a 1-based page.
func PageRange(page, size int) *Range {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	offset := (page - 1) * size
	return &Range{From: offset, To: offset + size - 1}
}

type Query struct {
	Table    string
	Columns  []string
	Joins    []string
	Preloads []string
	// Filters are combined with AND, AnyOf with OR, and the two groups with AND.
	Filters []Filter
	AnyOf   []Filter
	Order   []Order
	Range   *Range
}

func (q Query) where(tx *gorm.DB) *gorm.DB {
	for _, j := range q.Joins {
		tx = tx.Joins(j)
	}
	for _, f := range q.Filters {
		cond, arg := f.clause()
		tx = tx.Where(cond, arg)
	}
	if len(q.AnyOf) > 0 {
		conds := make([]string, 0, len(q.AnyOf))
		args := make([]interface{}, 0, len(q.AnyOf))
		for _, f := range q.AnyOf {
			cond, arg := f.clause()
			conds = append(conds, cond)
			args = append(args, arg)
		}
		tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return tx
}

func (q Query) apply(tx *gorm.DB) *gorm.DB {
	tx = tx.Table(q.Table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	tx = q.where(tx)
	for _, p := range q.Preloads {
		tx = tx.Preload(p)
	}
	for _, o := range q.Order {
		tx = tx.Order(o.String())
	}
	if q.Range != nil {
		tx = tx.Offset(q.Range.From).Limit(q.Range.Limit())
	}
	return tx
}
