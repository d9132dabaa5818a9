package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/calc"
)

var paymentMethods = []string{"card", "paypal", "cash_on_delivery"}

// OrderFaker builds an unsaved order of one to three books for customer.
// The total is the sum of the line totals.
func OrderFaker(rnd *rand.Rand, seq int, customer *models.Customer, books []models.Product, placed time.Time) *models.Order {
	status := models.OrderStatuses[rnd.Intn(len(models.OrderStatuses))]
	payment := "paid"
	switch status {
	case models.OrderStatusPending:
		payment = "unpaid"
	case models.OrderStatusCancelled:
		payment = "refunded"
	}

	order := &models.Order{
		OrderNumber:   fmt.Sprintf("ORD-%s-%04d", placed.Format("20060102"), seq),
		Status:        status,
		PaymentStatus: payment,
		PaymentMethod: paymentMethods[rnd.Intn(len(paymentMethods))],
		CustomerID:    &customer.ID,
		CreatedAt:     placed,
	}

	for i, n := 0, rnd.Intn(3)+1; i < n && len(books) > 0; i++ {
		book := books[rnd.Intn(len(books))]
		qty := rnd.Intn(3) + 1
		line := calc.LineTotal(book.Price, qty)
		order.Items = append(order.Items, models.OrderItem{
			ProductID:        &book.ID,
			ProductName:      book.Title,
			ProductThumbnail: book.ThumbnailImage,
			UnitPrice:        book.Price,
			Quantity:         qty,
			LineTotal:        line,
		})
	}
	order.TotalAmount = calc.ItemsTotal(order.Items)
	return order
}
