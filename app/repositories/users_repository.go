package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
)

const DefaultUserLimit = 50

type AppUserRepositoryImpl interface {
	GetUsers(ctx context.Context, limit, offset int) ([]models.AppUser, error)
	Create(ctx context.Context, user *models.AppUser) error
	Update(ctx context.Context, id int64, patch map[string]interface{}) (*models.AppUser, error)
	Delete(ctx context.Context, id int64) error
}

type AppUserRepository struct {
	crud[models.AppUser]
}

func NewAppUserRepository(gw *gateway.DB) *AppUserRepository {
	return &AppUserRepository{crud: crud[models.AppUser]{gw: gw}}
}

func (r *AppUserRepository) GetUsers(ctx context.Context, limit, offset int) ([]models.AppUser, error) {
	if limit <= 0 {
		limit = DefaultUserLimit
	}
	var users []models.AppUser
	err := r.gw.FetchCollection(ctx, gateway.Query{
		Table: "app_users",
		Order: []gateway.Order{{Column: "created_at"}},
		Range: &gateway.Range{From: offset, To: offset + limit - 1},
	}, &users)
	return users, err
}
