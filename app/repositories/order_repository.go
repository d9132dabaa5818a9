package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

type OrderRepositoryImpl interface {
	ListOrders(ctx context.Context, q gateway.Query) ([]models.Order, error)
	GetOrderDetails(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
}

type OrderRepository struct {
	gw *gateway.DB
}

func NewOrderRepository(gw *gateway.DB) *OrderRepository {
	return &OrderRepository{gw: gw}
}

func (r *OrderRepository) ListOrders(ctx context.Context, q gateway.Query) ([]models.Order, error) {
	var orders []models.Order
	if err := r.gw.FetchCollection(ctx, q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) GetOrderDetails(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.gw.FetchOne(ctx, gateway.Query{
		Table:    "orders",
		Filters:  []gateway.Filter{gateway.EqualTo("id", id)},
		Preloads: []string{"Customer", "Items"},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	if !models.IsOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}
	var order models.Order
	if err := r.gw.Update(ctx, &order, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return &order, nil
}
