package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/sirupsen/logrus"
)

type SubcategoryRepositoryImpl interface {
	GetSubcategories(ctx context.Context) ([]models.Subcategory, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]models.Subcategory, error)
	Create(ctx context.Context, subcategory *models.Subcategory) error
	Update(ctx context.Context, id int64, patch map[string]interface{}) (*models.Subcategory, error)
	Delete(ctx context.Context, id int64) error
}

type SubcategoryRepository struct {
	crud[models.Subcategory]
	log *logrus.Entry
}

func NewSubcategoryRepository(gw *gateway.DB, log *logrus.Logger) *SubcategoryRepository {
	return &SubcategoryRepository{
		crud: crud[models.Subcategory]{gw: gw},
		log:  log.WithField("component", "subcategory_repository"),
	}
}

func subcategoryQuery(filters ...gateway.Filter) gateway.Query {
	return gateway.Query{
		Table:   "subcategories",
		Columns: []string{"subcategories.*", "categories.name AS category_name"},
		Joins:   []string{"LEFT JOIN categories ON categories.id = subcategories.category_id"},
		Filters: append([]gateway.Filter{gateway.EqualTo("subcategories.is_active", true)}, filters...),
		Order:   []gateway.Order{{Column: "subcategories.sort_order", Ascending: true}},
	}
}

func (r *SubcategoryRepository) GetSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	return r.fetch(ctx, subcategoryQuery())
}

func (r *SubcategoryRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Subcategory, error) {
	return r.fetch(ctx, subcategoryQuery(gateway.EqualTo("subcategories.category_id", categoryID)))
}

func (r *SubcategoryRepository) fetch(ctx context.Context, q gateway.Query) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := r.gw.FetchCollection(ctx, q, &subcategories); err != nil {
		return nil, err
	}

	for i := range subcategories {
		if subcategories[i].CategoryName == "" {
			subcategories[i].CategoryName = models.UnknownCategoryName
		}
		n, err := r.gw.Count(ctx, gateway.Query{
			Table: models.ProductTable,
			Filters: []gateway.Filter{
				gateway.EqualTo("subcategory_id", subcategories[i].ID),
				gateway.EqualTo("is_active", true),
			},
		})
		if err != nil {
			r.log.WithError(err).WithField("subcategory_id", subcategories[i].ID).Warn("book count unavailable")
			n = 0
		}
		subcategories[i].Count = n
	}
	return subcategories, nil
}
