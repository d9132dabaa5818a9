package models

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	SortOrder   int       `gorm:"not null" json:"sort_order"`
	Count       int64     `gorm:"-" json:"count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Subcategory struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	CategoryID   int64     `gorm:"index;not null" json:"category_id"`
	CategoryName string    `gorm:"->;-:migration" json:"category_name"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	SortOrder    int       `gorm:"not null" json:"sort_order"`
	Count        int64     `gorm:"-" json:"count"`
	CreatedAt    time.Time `json:"created_at"`
}

const UnknownCategoryName = "Unknown"
