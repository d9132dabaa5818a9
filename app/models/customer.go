package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusBlocked  = "blocked"
)

type Customer struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	FirstName   string          `gorm:"size:100;not null" json:"first_name"`
	LastName    string          `gorm:"size:100" json:"last_name"`
	Email       string          `gorm:"size:255;not null;index" json:"email"`
	Phone       string          `gorm:"size:20" json:"phone"`
	Status      string          `gorm:"size:20;not null" json:"status"`
	TotalOrders int             `json:"total_orders"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_spent"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
