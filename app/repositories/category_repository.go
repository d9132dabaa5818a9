package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/sirupsen/logrus"
)

type CategoryRepositoryImpl interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id int64, patch map[string]interface{}) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository struct {
	crud[models.Category]
	log *logrus.Entry
}

func NewCategoryRepository(gw *gateway.DB, log *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{
		crud: crud[models.Category]{gw: gw},
		log:  log.WithField("component", "category_repository"),
	}
}

// GetCategories returns the active categories in display order, each with
// the number of active books filed under its name. A count that cannot be
// read is reported as 0.
func (r *CategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.gw.FetchCollection(ctx, gateway.Query{
		Table:   "categories",
		Filters: []gateway.Filter{gateway.EqualTo("is_active", true)},
		Order:   []gateway.Order{{Column: "sort_order", Ascending: true}},
	}, &categories)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		n, err := r.gw.Count(ctx, gateway.Query{
			Table: models.ProductTable,
			Filters: []gateway.Filter{
				gateway.EqualTo("category", categories[i].Name),
				gateway.EqualTo("is_active", true),
			},
		})
		if err != nil {
			r.log.WithError(err).WithField("category", categories[i].Name).Warn("book count unavailable")
			n = 0
		}
		categories[i].Count = n
	}
	return categories, nil
}
