package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
)

type BannerRepositoryImpl interface {
	GetBanners(ctx context.Context) ([]models.Banner, error)
	Create(ctx context.Context, banner *models.Banner) error
	Update(ctx context.Context, id int64, patch map[string]interface{}) (*models.Banner, error)
	Delete(ctx context.Context, id int64) error
}

type BannerRepository struct {
	crud[models.Banner]
}

func NewBannerRepository(gw *gateway.DB) *BannerRepository {
	return &BannerRepository{crud: crud[models.Banner]{gw: gw}}
}

func (r *BannerRepository) GetBanners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := r.gw.FetchCollection(ctx, gateway.Query{
		Table: "banners",
		Order: []gateway.Order{{Column: "priority"}},
	}, &banners)
	return banners, err
}
