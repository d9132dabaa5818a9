package gateway

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DB is the row side of the hosted backend.
type DB struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewDB(db *gorm.DB, log *logrus.Logger) *DB {
	return &DB{db: db, log: log.WithField("component", "gateway")}
}

func (g *DB) Conn() *gorm.DB {
	return g.db
}

func (g *DB) FetchCollection(ctx context.Context, q Query, dest interface{}) error {
	err := q.apply(g.db.WithContext(ctx)).Find(dest).Error
	if err != nil {
		g.log.WithError(err).WithField("table", q.Table).Debug("fetch collection failed")
	}
	return wrap("fetch", q.Table, err)
}

func (g *DB) FetchOne(ctx context.Context, q Query, dest interface{}) error {
	err := q.apply(g.db.WithContext(ctx)).Take(dest).Error
	return wrap("fetch one", q.Table, err)
}

func (g *DB) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	err := q.where(g.db.WithContext(ctx).Table(q.Table)).Count(&n).Error
	return n, wrap("count", q.Table, err)
}

func (g *DB) Sum(ctx context.Context, q Query, column string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := q.where(g.db.WithContext(ctx).Table(q.Table)).
		Select("SUM(" + column + ")").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, wrap("sum", q.Table, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Insert creates record, leaving out the omitted columns. The generated
// id is written back into record.
func (g *DB) Insert(ctx context.Context, record interface{}, omit ...string) error {
	tx := g.db.WithContext(ctx)
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	return wrap("insert", g.tableOf(record), tx.Create(record).Error)
}

// Update applies patch to the row with id and loads the affected row into
// record.
func (g *DB) Update(ctx context.Context, record interface{}, id int64, patch map[string]interface{}) error {
	table := g.tableOf(record)
	res := g.db.WithContext(ctx).Model(record).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return wrap("update", table, res.Error)
	}
	if err := g.db.WithContext(ctx).Where("id = ?", id).Take(record).Error; err != nil {
		return wrap("update", table, err)
	}
	return nil
}

func (g *DB) Delete(ctx context.Context, record interface{}, id int64) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(record)
	if res.Error != nil {
		return wrap("delete", g.tableOf(record), res.Error)
	}
	if res.RowsAffected == 0 {
		return &RemoteError{Op: "delete", Table: g.tableOf(record), Kind: KindNotFound, Message: "no rows deleted", Err: gorm.ErrRecordNotFound}
	}
	return nil
}

func (g *DB) HasColumn(table, column string) bool {
	return g.db.Migrator().HasColumn(table, column)
}

func (g *DB) tableOf(record interface{}) string {
	stmt := &gorm.Statement{DB: g.db}
	if err := stmt.Parse(record); err != nil {
		return ""
	}
	return stmt.Schema.Table
}
