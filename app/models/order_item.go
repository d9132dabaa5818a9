package models

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID               int64           `gorm:"primaryKey" json:"id"`
	OrderID          int64           `gorm:"index;not null" json:"order_id"`
	ProductID        *int64          `gorm:"index" json:"product_id"`
	ProductName      string          `gorm:"size:255" json:"product_name"`
	ProductThumbnail *string         `gorm:"type:text" json:"product_thumbnail"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(12,2)" json:"line_total"`
}
