package seeders

import (
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/db/fakers"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Options struct {
	BooksPerCategory int
	Users            int
	Customers        int
	Orders           int
	Banners          int
	Seed             int64
}

func DefaultOptions() Options {
	return Options{BooksPerCategory: 8, Users: 12, Customers: 25, Orders: 40, Banners: 3, Seed: time.Now().UnixNano()}
}

type Summary struct {
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
	Books         int `json:"books"`
	Users         int `json:"users"`
	Customers     int `json:"customers"`
	Orders        int `json:"orders"`
	Banners       int `json:"banners"`
}

// DBSeed fills an empty catalog with demo data in one transaction.
func DBSeed(db *gorm.DB, opts Options, log *logrus.Logger) (Summary, error) {
	rnd := rand.New(rand.NewSource(opts.Seed))
	var sum Summary

	err := db.Transaction(func(tx *gorm.DB) error {
		var books []models.Product
		for i, name := range fakers.CategoryNames {
			category := fakers.CategoryFaker(name, i+1)
			if err := tx.Create(category).Error; err != nil {
				return err
			}
			sum.Categories++

			subs := []*models.Subcategory{
				fakers.SubcategoryFaker(category.ID, 1),
				fakers.SubcategoryFaker(category.ID, 2),
			}
			for _, sub := range subs {
				if err := tx.Create(sub).Error; err != nil {
					return err
				}
				sum.Subcategories++
			}

			for j := 0; j < opts.BooksPerCategory; j++ {
				book := fakers.ProductFaker(rnd, name, &subs[j%len(subs)].ID)
				if err := tx.Create(book).Error; err != nil {
					return err
				}
				books = append(books, *book)
				sum.Books++
			}
		}

		for i := 0; i < opts.Users; i++ {
			if err := tx.Create(fakers.UserFaker(rnd)).Error; err != nil {
				return err
			}
			sum.Users++
		}

		customers := make([]*models.Customer, 0, opts.Customers)
		for i := 0; i < opts.Customers; i++ {
			c := fakers.CustomerFaker(rnd)
			if err := tx.Create(c).Error; err != nil {
				return err
			}
			customers = append(customers, c)
			sum.Customers++
		}

		now := time.Now()
		for i := 0; i < opts.Orders && len(customers) > 0; i++ {
			customer := customers[rnd.Intn(len(customers))]
			placed := now.Add(-time.Duration(rnd.Intn(90*24)) * time.Hour)
			order := fakers.OrderFaker(rnd, i+1, customer, books, placed)
			if err := tx.Create(order).Error; err != nil {
				return err
			}
			if order.Status != models.OrderStatusCancelled {
				customer.TotalOrders++
				customer.TotalSpent = customer.TotalSpent.Add(order.TotalAmount)
			}
			sum.Orders++
		}
		for _, c := range customers {
			if err := tx.Model(c).Updates(map[string]interface{}{
				"total_orders": c.TotalOrders,
				"total_spent":  c.TotalSpent.Round(2),
			}).Error; err != nil {
				return err
			}
		}

		for i := 0; i < opts.Banners; i++ {
			if err := tx.Create(fakers.BannerFaker(rnd, opts.Banners-i)).Error; err != nil {
				return err
			}
			sum.Banners++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	log.WithFields(logrus.Fields{
		"component":  "seeder",
		"categories": sum.Categories,
		"books":      sum.Books,
		"orders":     sum.Orders,
	}).Info("catalog seeded")
	return sum, nil
}
