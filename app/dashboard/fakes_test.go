package dashboard

import (
	"context"
	"sync"
	"testing"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway/gatewaytest"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/repositories"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/stretchr/testify/require"
)

// fakeTable is an in-memory table. When gate is set, list calls wait for
// it to close.
type fakeTable[T any] struct {
	mu      sync.Mutex
	rows    []T
	idOf    func(T) int64
	err     error
	saveErr error
	gate    chan struct{}
	calls   int
	created []T
	updates map[int64]map[string]interface{}
	deleted []int64
}

func (f *fakeTable[T]) list(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]T(nil), f.rows...), nil
}

func (f *fakeTable[T]) Create(ctx context.Context, record *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.created = append(f.created, *record)
	f.rows = append(f.rows, *record)
	return nil
}

func (f *fakeTable[T]) Update(ctx context.Context, id int64, patch map[string]interface{}) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.updates == nil {
		f.updates = map[int64]map[string]interface{}{}
	}
	f.updates[id] = patch
	var zero T
	return &zero, nil
}

func (f *fakeTable[T]) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.rows[:0:0]
	for _, r := range f.rows {
		if f.idOf(r) != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeTable[T]) setGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeTable[T]) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCategories struct{ fakeTable[models.Category] }

func (f *fakeCategories) GetCategories(ctx context.Context) ([]models.Category, error) {
	return f.list(ctx)
}

type fakeSubcategories struct{ fakeTable[models.Subcategory] }

func (f *fakeSubcategories) GetSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	return f.list(ctx)
}

func (f *fakeSubcategories) GetByCategory(ctx context.Context, categoryID int64) ([]models.Subcategory, error) {
	rows, err := f.list(ctx)
	var out []models.Subcategory
	for _, r := range rows {
		if r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, err
}

type fakeProducts struct {
	fakeTable[models.Product]
	media        bool
	mediaDropped bool
	saved        []*models.Product
	savedIDs     []int64
}

func (f *fakeProducts) GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return f.list(ctx)
}

func (f *fakeProducts) SaveProduct(ctx context.Context, product *models.Product, id int64) (repositories.SaveOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.saveErr != nil {
		return repositories.SaveOutcome{}, f.saveErr
	}
	f.saved = append(f.saved, product)
	f.savedIDs = append(f.savedIDs, id)
	return repositories.SaveOutcome{Product: product, MediaDropped: f.mediaDropped}, nil
}

func (f *fakeProducts) MediaSupported() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.media
}

type fakeUsers struct{ fakeTable[models.AppUser] }

func (f *fakeUsers) GetUsers(ctx context.Context, limit, offset int) ([]models.AppUser, error) {
	return f.list(ctx)
}

type fakeBanners struct{ fakeTable[models.Banner] }

func (f *fakeBanners) GetBanners(ctx context.Context) ([]models.Banner, error) {
	return f.list(ctx)
}

type fakeStats struct {
	stats models.DashboardStats
	err   error
}

func (f *fakeStats) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return f.stats, f.err
}

type fakeOrders struct {
	fakeTable[models.Order]
	queries []gateway.Query
}

func (f *fakeOrders) ListOrders(ctx context.Context, q gateway.Query) ([]models.Order, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.list(ctx)
}

func (f *fakeOrders) GetOrderDetails(ctx context.Context, id int64) (*models.Order, error) {
	for _, o := range f.rows {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, &gateway.RemoteError{Op: "fetch one", Table: "orders", Kind: gateway.KindNotFound}
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	if !models.IsOrderStatus(status) {
		return nil, repositories.ErrInvalidOrderStatus
	}
	return &models.Order{ID: id, Status: status}, nil
}

type fakeCustomers struct{ fakeTable[models.Customer] }

func (f *fakeCustomers) ListCustomers(ctx context.Context, q gateway.Query) ([]models.Customer, error) {
	return f.list(ctx)
}

type fakeUploader struct {
	mu        sync.Mutex
	result    services.UploadResult
	err       error
	namespace string
	calls     int
}

func (f *fakeUploader) Upload(ctx context.Context, field services.MediaField, namespace string, files []services.UploadFile) (services.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.namespace = namespace
	return f.result, f.err
}

type fixture struct {
	d             *Dashboard
	stats         *fakeStats
	categories    *fakeCategories
	subcategories *fakeSubcategories
	products      *fakeProducts
	users         *fakeUsers
	banners       *fakeBanners
	orders        *fakeOrders
	customers     *fakeCustomers
	uploader      *fakeUploader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tr, err := i18n.New()
	require.NoError(t, err)
	val, err := NewValidator(tr)
	require.NoError(t, err)

	f := &fixture{
		stats:         &fakeStats{},
		categories:    &fakeCategories{fakeTable[models.Category]{idOf: func(c models.Category) int64 { return c.ID }}},
		subcategories: &fakeSubcategories{fakeTable[models.Subcategory]{idOf: func(s models.Subcategory) int64 { return s.ID }}},
		products:      &fakeProducts{fakeTable: fakeTable[models.Product]{idOf: func(p models.Product) int64 { return p.ID }}, media: true},
		users:         &fakeUsers{fakeTable[models.AppUser]{idOf: func(u models.AppUser) int64 { return u.ID }}},
		banners:       &fakeBanners{fakeTable[models.Banner]{idOf: func(b models.Banner) int64 { return b.ID }}},
		orders:        &fakeOrders{fakeTable: fakeTable[models.Order]{idOf: func(o models.Order) int64 { return o.ID }}},
		customers:     &fakeCustomers{fakeTable[models.Customer]{idOf: func(c models.Customer) int64 { return c.ID }}},
		uploader:      &fakeUploader{},
	}
	f.d = New(Repositories{
		Stats:         f.stats,
		Categories:    f.categories,
		Subcategories: f.subcategories,
		Products:      f.products,
		Users:         f.users,
		Banners:       f.banners,
		Orders:        f.orders,
		Customers:     f.customers,
	}, f.uploader, val, gatewaytest.Logger())
	return f
}
