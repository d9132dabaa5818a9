package repositories

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/sirupsen/logrus"
)

const DefaultProductLimit = 50

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product, id int64) (SaveOutcome, error)
	Delete(ctx context.Context, id int64) error
	MediaSupported() bool
}

// SaveOutcome reports a write that had to leave the media fields behind.
type SaveOutcome struct {
	Product      *models.Product
	MediaDropped bool
}

type ProductRepository struct {
	gw   *gateway.DB
	caps *gateway.Capabilities
	log  *logrus.Entry
}

func NewProductRepository(gw *gateway.DB, caps *gateway.Capabilities, log *logrus.Logger) *ProductRepository {
	return &ProductRepository{gw: gw, caps: caps, log: log.WithField("component", "product_repository")}
}

var productColumns = []string{
	"id", "title", "description", "price", "category", "subcategory_id",
	"stock_quantity", "is_active", "ideal_for", "age_range", "characters",
	"genre", "created_at",
	"thumbnail_image", "images", "videos", "preview_video",
}

func (r *ProductRepository) MediaSupported() bool {
	return r.caps.Has(gateway.MediaColumns)
}

// GetProducts reads the newest books. When the media columns are missing
// the rows are read with every available column and given empty media.
func (r *ProductRepository) GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultProductLimit
	}
	q := gateway.Query{
		Table: models.ProductTable,
		Order: []gateway.Order{{Column: "created_at"}},
		Range: &gateway.Range{From: offset, To: offset + limit - 1},
	}

	if r.MediaSupported() {
		rich := q
		rich.Columns = productColumns
		var products []models.Product
		err := r.gw.FetchCollection(ctx, rich, &products)
		if err == nil {
			for i := range products {
				products[i].Images = products[i].Images.OrEmpty()
				products[i].Videos = products[i].Videos.OrEmpty()
			}
			return products, nil
		}
		if !mediaDrift(err) {
			return nil, err
		}
		r.log.WithError(err).Warn("media columns not found, falling back to basic book data")
		r.caps.Disable(gateway.MediaColumns)
	}

	var products []models.Product
	if err := r.gw.FetchCollection(ctx, q, &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].BackfillMedia()
	}
	return products, nil
}

// SaveProduct inserts product when id is 0 and updates the row with id
// otherwise. A write rejected for the media columns is retried once
// without them.
func (r *ProductRepository) SaveProduct(ctx context.Context, product *models.Product, id int64) (SaveOutcome, error) {
	withMedia := r.MediaSupported()
	saved, err := r.write(ctx, product, id, withMedia)
	if err != nil && withMedia && mediaDrift(err) {
		r.log.WithError(err).Warn("media columns rejected, saving without media")
		r.caps.Disable(gateway.MediaColumns)
		withMedia = false
		saved, err = r.write(ctx, product, id, false)
	}
	if err != nil {
		return SaveOutcome{}, err
	}
	return SaveOutcome{Product: saved, MediaDropped: !withMedia && product.HasMedia()}, nil
}

func (r *ProductRepository) write(ctx context.Context, product *models.Product, id int64, withMedia bool) (*models.Product, error) {
	if id == 0 {
		record := *product
		omit := []string{"cover_image_url"}
		if !withMedia {
			omit = append(omit, models.ProductMediaColumns...)
		}
		if err := r.gw.Insert(ctx, &record, omit...); err != nil {
			return nil, err
		}
		return &record, nil
	}

	var saved models.Product
	if err := r.gw.Update(ctx, &saved, id, productPatch(product, withMedia)); err != nil {
		return nil, err
	}
	return &saved, nil
}

// mediaDrift reports a missing column error that names a media column.
func mediaDrift(err error) bool {
	if !gateway.IsSchemaDrift(err) {
		return false
	}
	msg := err.Error()
	for _, col := range models.ProductMediaColumns {
		if strings.Contains(msg, col) {
			return true
		}
	}
	return false
}

func productPatch(p *models.Product, withMedia bool) map[string]interface{} {
	patch := map[string]interface{}{
		"title":          p.Title,
		"description":    p.Description,
		"price":          p.Price,
		"category":       p.Category,
		"subcategory_id": p.SubcategoryID,
		"stock_quantity": p.StockQuantity,
		"is_active":      p.IsActive,
		"ideal_for":      p.IdealFor,
		"age_range":      p.AgeRange,
		"characters":     p.Characters.OrEmpty(),
		"genre":          p.Genre,
	}
	if withMedia {
		patch["thumbnail_image"] = p.ThumbnailImage
		patch["images"] = p.Images.OrEmpty()
		patch["videos"] = p.Videos.OrEmpty()
		patch["preview_video"] = p.PreviewVideo
	}
	return patch
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.gw.Delete(ctx, &models.Product{}, id)
}
