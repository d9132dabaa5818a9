package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway/gatewaytest"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// legacyBook is the books table as it was before the media columns.
type legacyBook struct {
	ID            int64
	Title         string
	Description   string
	Price         decimal.Decimal `gorm:"type:decimal(10,2)"`
	Category      string
	SubcategoryID *int64
	StockQuantity int
	IsActive      bool
	CoverImageURL *string
	IdealFor      *string
	AgeRange      *string
	Characters    models.StringList
	Genre         *string
	CreatedAt     time.Time
}

func (legacyBook) TableName() string { return models.ProductTable }

func strPtr(s string) *string { return &s }

func openCatalog(t *testing.T, legacy bool) (*gorm.DB, *gateway.DB) {
	t.Helper()
	books := interface{}(&models.Product{})
	if legacy {
		books = &legacyBook{}
	}
	conn := gatewaytest.OpenDB(t,
		&models.Category{}, &models.Subcategory{}, books,
		&models.AppUser{}, &models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.Banner{},
	)
	return conn, gateway.NewDB(conn, gatewaytest.Logger())
}

func TestGetProductsFallsBackOnLegacySchema(t *testing.T) {
	conn, gw := openCatalog(t, true)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, conn.Create(&[]legacyBook{
		{Title: "Old Tales", Price: decimal.NewFromInt(12), Category: "Fantasy", IsActive: true, CoverImageURL: strPtr("https://cdn/old.png"), CreatedAt: base},
		{Title: "No Cover", Price: decimal.NewFromInt(8), Category: "Fantasy", IsActive: true, CreatedAt: base.Add(time.Hour)},
	}).Error)

	caps := gateway.NewCapabilities(map[gateway.Capability]bool{gateway.MediaColumns: true})
	repo := NewProductRepository(gw, caps, gatewaytest.Logger())

	products, err := repo.GetProducts(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "No Cover", products[0].Title)
	assert.Nil(t, products[0].ThumbnailImage)

	old := products[1]
	assert.Equal(t, models.StringList{}, old.Images)
	assert.Equal(t, models.StringList{}, old.Videos)
	assert.Nil(t, old.PreviewVideo)
	require.NotNil(t, old.ThumbnailImage)
	assert.Equal(t, "https://cdn/old.png", *old.ThumbnailImage)

	assert.False(t, repo.MediaSupported())
}

func TestGetProductsRichSchema(t *testing.T) {
	conn, gw := openCatalog(t, false)
	require.NoError(t, conn.Create(&models.Product{
		Title: "Dragons", Price: decimal.NewFromInt(20), Category: "Fantasy", IsActive: true,
		ThumbnailImage: strPtr("https://cdn/t.png"), Images: models.StringList{"https://cdn/1.png", "https://cdn/2.png"},
		CreatedAt: time.Now(),
	}).Error)

	caps := gateway.NewCapabilities(nil)
	caps.ProbeColumns(gw, gateway.MediaColumns, models.ProductTable, models.ProductMediaColumns...)
	repo := NewProductRepository(gw, caps, gatewaytest.Logger())

	products, err := repo.GetProducts(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.StringList{"https://cdn/1.png", "https://cdn/2.png"}, products[0].Images)
	assert.Equal(t, models.StringList{}, products[0].Videos)
	assert.True(t, repo.MediaSupported())
}

func TestSaveProductRetriesWithoutMedia(t *testing.T) {
	_, gw := openCatalog(t, true)
	caps := gateway.NewCapabilities(map[gateway.Capability]bool{gateway.MediaColumns: true})
	repo := NewProductRepository(gw, caps, gatewaytest.Logger())
	ctx := context.Background()

	product := &models.Product{
		Title: "Moon", Price: decimal.RequireFromString("9.99"), Category: "Space", IsActive: true,
		Images: models.StringList{"https://cdn/moon.png"},
	}
	out, err := repo.SaveProduct(ctx, product, 0)
	require.NoError(t, err)
	assert.True(t, out.MediaDropped)
	require.NotZero(t, out.Product.ID)
	assert.False(t, repo.MediaSupported())

	product.Title = "Moon II"
	out, err = repo.SaveProduct(ctx, product, out.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Moon II", out.Product.Title)
	assert.True(t, out.MediaDropped)
}

func TestSaveProductWithMedia(t *testing.T) {
	_, gw := openCatalog(t, false)
	caps := gateway.NewCapabilities(map[gateway.Capability]bool{gateway.MediaColumns: true})
	repo := NewProductRepository(gw, caps, gatewaytest.Logger())

	out, err := repo.SaveProduct(context.Background(), &models.Product{
		Title: "Sun", Price: decimal.NewFromInt(5), Category: "Space",
		Videos: models.StringList{"https://cdn/sun.mp4"},
	}, 0)
	require.NoError(t, err)
	assert.False(t, out.MediaDropped)
	assert.True(t, repo.MediaSupported())

	updated, err := repo.SaveProduct(context.Background(), &models.Product{
		Title: "Sun", Price: decimal.NewFromInt(6), Category: "Space",
		Videos: models.StringList{"https://cdn/sun.mp4", "https://cdn/sun2.mp4"},
	}, out.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"https://cdn/sun.mp4", "https://cdn/sun2.mp4"}, updated.Product.Videos)
	assert.True(t, decimal.NewFromInt(6).Equal(updated.Product.Price))
}

func TestGetCategoriesCountsActiveBooks(t *testing.T) {
	conn, gw := openCatalog(t, false)
	require.NoError(t, conn.Create(&[]models.Category{
		{Name: "Science", IsActive: true, SortOrder: 2},
		{Name: "Fantasy", IsActive: true, SortOrder: 1},
		{Name: "Retired", IsActive: false, SortOrder: 3},
	}).Error)
	require.NoError(t, conn.Create(&[]models.Product{
		{Title: "A", Category: "Fantasy", IsActive: true},
		{Title: "B", Category: "Fantasy", IsActive: true},
		{Title: "C", Category: "Fantasy", IsActive: false},
	}).Error)

	categories, err := NewCategoryRepository(gw, gatewaytest.Logger()).GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Fantasy", categories[0].Name)
	assert.EqualValues(t, 2, categories[0].Count)
	assert.Equal(t, "Science", categories[1].Name)
	assert.EqualValues(t, 0, categories[1].Count)
}

func TestGetSubcategoriesJoinsCategoryName(t *testing.T) {
	conn, gw := openCatalog(t, false)
	fantasy := models.Category{Name: "Fantasy", IsActive: true, SortOrder: 1}
	require.NoError(t, conn.Create(&fantasy).Error)
	subs := []models.Subcategory{
		{Name: "Dragons", CategoryID: fantasy.ID, IsActive: true, SortOrder: 1},
		{Name: "Orphan", CategoryID: 999, IsActive: true, SortOrder: 2},
	}
	require.NoError(t, conn.Create(&subs).Error)
	require.NoError(t, conn.Create(&models.Product{Title: "A", Category: "Fantasy", SubcategoryID: &subs[0].ID, IsActive: true}).Error)

	repo := NewSubcategoryRepository(gw, gatewaytest.Logger())
	all, err := repo.GetSubcategories(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Fantasy", all[0].CategoryName)
	assert.EqualValues(t, 1, all[0].Count)
	assert.Equal(t, models.UnknownCategoryName, all[1].CategoryName)

	byCategory, err := repo.GetByCategory(context.Background(), fantasy.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Dragons", byCategory[0].Name)
}

func TestCrudRoundTrip(t *testing.T) {
	_, gw := openCatalog(t, false)
	repo := NewBannerRepository(gw)
	ctx := context.Background()

	low := models.Banner{Title: "Low", IsActive: true, Priority: 1}
	high := models.Banner{Title: "High", IsActive: true, Priority: 2}
	require.NoError(t, repo.Create(ctx, &low))
	require.NoError(t, repo.Create(ctx, &high))

	banners, err := repo.GetBanners(ctx)
	require.NoError(t, err)
	require.Len(t, banners, 2)
	assert.Equal(t, "High", banners[0].Title)

	updated, err := repo.Update(ctx, low.ID, map[string]interface{}{"title": "Lower"})
	require.NoError(t, err)
	assert.Equal(t, "Lower", updated.Title)

	require.NoError(t, repo.Delete(ctx, high.ID))
	banners, err = repo.GetBanners(ctx)
	require.NoError(t, err)
	assert.Len(t, banners, 1)
}

func TestOrderDetailsAndStatus(t *testing.T) {
	conn, gw := openCatalog(t, false)
	customer := models.Customer{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Status: models.CustomerStatusActive}
	require.NoError(t, conn.Create(&customer).Error)
	order := models.Order{OrderNumber: "ORD-1", Status: models.OrderStatusPending, TotalAmount: decimal.NewFromInt(30), CustomerID: &customer.ID}
	require.NoError(t, conn.Create(&order).Error)
	require.NoError(t, conn.Create(&models.OrderItem{OrderID: order.ID, ProductName: "Moon", UnitPrice: decimal.NewFromInt(15), Quantity: 2, LineTotal: decimal.NewFromInt(30)}).Error)

	repo := NewOrderRepository(gw)
	ctx := context.Background()

	details, err := repo.GetOrderDetails(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Customer)
	assert.Equal(t, "Ann Lee", details.Customer.FullName())
	require.Len(t, details.Items, 1)
	assert.Equal(t, 2, details.Items[0].Quantity)

	_, err = repo.UpdateStatus(ctx, order.ID, "lost")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	updated, err := repo.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = repo.GetOrderDetails(ctx, 404)
	assert.True(t, gateway.IsNotFound(err))
}

func TestStatsComputedWithoutView(t *testing.T) {
	conn, gw := openCatalog(t, false)
	require.NoError(t, conn.Create(&[]models.Order{
		{OrderNumber: "A", Status: "pending", TotalAmount: decimal.NewFromInt(10)},
		{OrderNumber: "B", Status: "pending", TotalAmount: decimal.NewFromInt(15)},
	}).Error)
	require.NoError(t, conn.Create(&[]models.Banner{{Title: "on", IsActive: true}, {Title: "off"}}).Error)
	require.NoError(t, conn.Create(&models.Category{Name: "Fantasy", IsActive: true}).Error)

	stats, err := NewStatsRepository(gw, gatewaytest.Logger()).GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.ActiveBanners)
	assert.EqualValues(t, 1, stats.TotalCategories)
	assert.EqualValues(t, 0, stats.TotalBooks)
	assert.True(t, decimal.NewFromInt(25).Equal(stats.TotalRevenue))
}
