package migrations

import (
	"fmt"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.AppUser{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Banner{},
	)
}

// AddMediaColumns brings an existing books table up to date. Columns that
// already exist are left alone.
func AddMediaColumns(db *gorm.DB) ([]string, error) {
	m := db.Migrator()
	var added []string
	for _, col := range models.ProductMediaColumns {
		if m.HasColumn(&models.Product{}, col) {
			continue
		}
		if err := m.AddColumn(&models.Product{}, col); err != nil {
			return added, fmt.Errorf("add column %s: %w", col, err)
		}
		added = append(added, col)
	}
	return added, nil
}
