package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
)

type CustomerRepositoryImpl interface {
	ListCustomers(ctx context.Context, q gateway.Query) ([]models.Customer, error)
}

type CustomerRepository struct {
	gw *gateway.DB
}

func NewCustomerRepository(gw *gateway.DB) *CustomerRepository {
	return &CustomerRepository{gw: gw}
}

func (r *CustomerRepository) ListCustomers(ctx context.Context, q gateway.Query) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.gw.FetchCollection(ctx, q, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
