package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/helpers"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/repositories"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Repositories struct {
	Stats         repositories.StatsRepositoryImpl
	Categories    repositories.CategoryRepositoryImpl
	Subcategories repositories.SubcategoryRepositoryImpl
	Products      repositories.ProductRepositoryImpl
	Users         repositories.AppUserRepositoryImpl
	Banners       repositories.BannerRepositoryImpl
	Orders        repositories.OrderRepositoryImpl
	Customers     repositories.CustomerRepositoryImpl
}

type Uploader interface {
	Upload(ctx context.Context, field services.MediaField, namespace string, files []services.UploadFile) (services.UploadResult, error)
}

// Dashboard is the view-model of one admin session. All state changes go
// through Reduce under mu, and mu is never held while waiting on the
// backend.
type Dashboard struct {
	mu         sync.Mutex
	state      State
	loadSeq    uint64
	loadCancel context.CancelFunc

	repos     Repositories
	uploader  Uploader
	validator *Validator
	log       *logrus.Entry

	Orders    *ListController[models.Order]
	Customers *ListController[models.Customer]
}

func New(repos Repositories, uploader Uploader, validator *Validator, log *logrus.Logger) *Dashboard {
	return &Dashboard{
		state:     NewState(),
		repos:     repos,
		uploader:  uploader,
		validator: validator,
		log:       log.WithField("component", "dashboard"),
		Orders:    NewListController[models.Order]("orders", BuildOrdersQuery, repos.Orders.ListOrders, log),
		Customers: NewListController[models.Customer]("customers", BuildCustomersQuery, repos.Customers.ListCustomers, log),
	}
}

type View struct {
	State
	Orders    ListView[models.Order]    `json:"orders"`
	Customers ListView[models.Customer] `json:"customers"`
}

func (d *Dashboard) Snapshot() View {
	d.mu.Lock()
	st := d.state
	d.mu.Unlock()
	return View{State: st, Orders: d.Orders.View(), Customers: d.Customers.View()}
}

func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dashboard) dispatch(actions ...Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range actions {
		d.state = Reduce(d.state, a)
	}
}

// supersede applies actions and invalidates any load in flight.
func (d *Dashboard) supersede(actions ...Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadSeq++
	if d.loadCancel != nil {
		d.loadCancel()
		d.loadCancel = nil
	}
	for _, a := range actions {
		d.state = Reduce(d.state, a)
	}
}

func (d *Dashboard) dispatchIfCurrent(seq uint64, a Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.loadSeq {
		return
	}
	d.state = Reduce(d.state, a)
}

func newNotice(level NoticeLevel, message string) Notice {
	return Notice{ID: uuid.NewString(), Level: level, Message: message}
}

func (d *Dashboard) post(level NoticeLevel, message string) {
	d.dispatch(NoticePosted{Notice: newNotice(level, message)})
}

// DrainNotices hands out the pending notices once.
func (d *Dashboard) DrainNotices() []Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	notices := d.state.Notices
	ids := make([]string, 0, len(notices))
	for _, n := range notices {
		ids = append(ids, n.ID)
	}
	d.state = Reduce(d.state, NoticesDrained{IDs: ids})
	return notices
}

// LoadAll refetches every collection at once. Each collection lands on its
// own and a failing one leaves the others alone. A newer LoadAll cancels
// this one and its results are thrown away.
func (d *Dashboard) LoadAll(ctx context.Context) {
	d.mu.Lock()
	d.loadSeq++
	seq := d.loadSeq
	if d.loadCancel != nil {
		d.loadCancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.loadCancel = cancel
	d.state = Reduce(d.state, LoadStarted{})
	d.mu.Unlock()
	defer cancel()

	loaders := []func(context.Context) Action{
		d.loadStats,
		d.loadCategories,
		d.loadSubcategories,
		d.loadProducts,
		d.loadUsers,
		d.loadBanners,
	}

	var wg sync.WaitGroup
	for _, load := range loaders {
		wg.Add(1)
		go func(load func(context.Context) Action) {
			defer wg.Done()
			d.dispatchIfCurrent(seq, load(ctx))
		}(load)
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.Orders.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Customers.Refresh(ctx)
	}()
	wg.Wait()

	d.dispatchIfCurrent(seq, LoadFinished{})
}

func (d *Dashboard) failed(collection string, err error) Action {
	d.log.WithError(err).WithField("collection", collection).Error("load failed")
	drift := collection == "products" && gateway.IsSchemaDrift(err)
	msg := "Failed to load " + collection
	if drift {
		msg = SchemaUpdateMessage
	}
	return LoadFailed{Collection: collection, SchemaDrift: drift, Notice: newNotice(NoticeError, msg)}
}

func (d *Dashboard) loadStats(ctx context.Context) Action {
	stats, err := d.repos.Stats.GetDashboardStats(ctx)
	if err != nil {
		return d.failed("stats", err)
	}
	return StatsLoaded{Stats: stats}
}

func (d *Dashboard) loadCategories(ctx context.Context) Action {
	rows, err := d.repos.Categories.GetCategories(ctx)
	if err != nil {
		return d.failed("categories", err)
	}
	return CategoriesLoaded{Rows: mapRows(rows, NewCategory)}
}

func (d *Dashboard) loadSubcategories(ctx context.Context) Action {
	rows, err := d.repos.Subcategories.GetSubcategories(ctx)
	if err != nil {
		return d.failed("subcategories", err)
	}
	return SubcategoriesLoaded{Rows: mapRows(rows, NewSubcategory)}
}

func (d *Dashboard) loadProducts(ctx context.Context) Action {
	rows, err := d.repos.Products.GetProducts(ctx, repositories.DefaultProductLimit, 0)
	if err != nil {
		return d.failed("products", err)
	}
	return ProductsLoaded{Rows: mapRows(rows, NewProduct), MediaSupported: d.repos.Products.MediaSupported()}
}

func (d *Dashboard) loadUsers(ctx context.Context) Action {
	rows, err := d.repos.Users.GetUsers(ctx, repositories.DefaultUserLimit, 0)
	if err != nil {
		return d.failed("users", err)
	}
	return UsersLoaded{Rows: mapRows(rows, NewUser)}
}

func (d *Dashboard) loadBanners(ctx context.Context) Action {
	rows, err := d.repos.Banners.GetBanners(ctx)
	if err != nil {
		return d.failed("banners", err)
	}
	return BannersLoaded{Rows: mapRows(rows, NewBanner)}
}

func (d *Dashboard) SetSection(section Section) {
	d.dispatch(SectionChanged{Section: section})
}

func (d *Dashboard) DismissSchemaWarning() {
	d.dispatch(SchemaWarningDismissed{})
}

// OpenModal opens mode for kind. Every mode but add needs a loaded entity.
func (d *Dashboard) OpenModal(mode ModalMode, kind Kind, id int64) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidModal, mode)
	}
	entity, err := NewEntity(kind)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if mode != ModalAdd {
		if entity, err = d.state.Find(kind, id); err != nil {
			return err
		}
	}
	d.state = Reduce(d.state, ModalOpened{Mode: mode, Kind: kind, Entity: entity})
	return nil
}

func (d *Dashboard) CloseModal() {
	d.dispatch(ModalClosed{})
}

func (d *Dashboard) SetField(field string, value interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Modal.Editing() {
		return ErrNoActiveForm
	}
	d.state = Reduce(d.state, FieldChanged{Field: field, Value: value})
	return nil
}

func (d *Dashboard) RemoveMedia(field services.MediaField, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Modal.Editing() {
		return ErrNoActiveForm
	}
	d.state = Reduce(d.state, MediaRemoved{Field: field, Index: index})
	return nil
}

// Save validates the open form and writes it. A rejected form sends
// nothing. On success the modal closes and every collection is reloaded.
func (d *Dashboard) Save(ctx context.Context) error {
	st := d.State()
	if !st.Modal.Editing() {
		return ErrNoActiveForm
	}

	target := st.Modal.Selected
	if target == nil {
		var err error
		if target, err = NewEntity(st.Modal.Kind); err != nil {
			return err
		}
	}

	s := &saver{ctx: ctx, d: d, state: st, form: st.Form, mode: st.Modal.Mode}
	target.Accept(s)

	if s.err != nil {
		var ve *ValidationError
		if errors.As(s.err, &ve) {
			d.post(NoticeError, ve.Message)
			return ve
		}
		se := &SaveError{Kind: st.Modal.Kind, Mode: st.Modal.Mode, Message: saveErrorMessage(st.Modal.Kind, st.Modal.Mode, s.err), Err: s.err}
		d.log.WithError(s.err).WithFields(logrus.Fields{"kind": se.Kind, "mode": se.Mode}).Error("save failed")
		d.post(NoticeError, se.Message)
		return se
	}

	done := "added"
	if st.Modal.Mode == ModalEdit {
		done = "updated"
	}
	notices := []Action{
		SaveSucceeded{},
		NoticePosted{Notice: newNotice(NoticeSuccess, fmt.Sprintf("%s %s successfully!", helpers.CapitalizeFirstLetter(string(st.Modal.Kind)), done))},
	}
	if s.mediaDropped {
		notices = append(notices, NoticePosted{Notice: newNotice(NoticeWarning, "Saved without media. "+SchemaUpdateMessage)})
	}
	d.supersede(notices...)

	d.LoadAll(ctx)
	return nil
}

// Delete removes an entity after the admin confirmed. The row leaves the
// local collection before the reload so the table updates at once.
func (d *Dashboard) Delete(ctx context.Context, kind Kind, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	target, err := NewEntity(kind)
	if err != nil {
		return err
	}

	del := &deleter{ctx: ctx, repos: d.repos, id: id}
	target.Accept(del)
	if del.err != nil {
		d.log.WithError(del.err).WithFields(logrus.Fields{"kind": kind, "id": id}).Error("delete failed")
		se := &SaveError{Kind: kind, Mode: ModalDelete, Message: "Failed to delete item. Please try again.", Err: del.err}
		d.post(NoticeError, se.Message)
		return se
	}

	d.supersede(EntityRemoved{Target: target, ID: id}, ModalClosed{})
	d.LoadAll(ctx)
	return nil
}

// UploadMedia uploads files for field of the open form and folds the URLs
// that made it into the form.
func (d *Dashboard) UploadMedia(ctx context.Context, field services.MediaField, files []services.UploadFile) (services.UploadResult, error) {
	d.mu.Lock()
	if !d.state.Modal.Editing() {
		d.mu.Unlock()
		return services.UploadResult{}, ErrNoActiveForm
	}
	namespace := "new"
	if sel := d.state.Modal.Selected; sel != nil && sel.EntityID() != 0 {
		namespace = strconv.FormatInt(sel.EntityID(), 10)
	}
	modalSeq := d.state.ModalSeq
	d.state = Reduce(d.state, UploadStarted{})
	d.mu.Unlock()

	res, err := d.uploader.Upload(ctx, field, namespace, files)

	actions := make([]Action, 0, len(res.Failures)+3)
	for _, f := range res.Failures {
		actions = append(actions, NoticePosted{Notice: newNotice(NoticeError, f.Message())})
	}
	if len(res.URLs) > 0 {
		actions = append(actions,
			MediaUploaded{ModalSeq: modalSeq, Field: field, URLs: res.URLs},
			NoticePosted{Notice: newNotice(NoticeSuccess, fmt.Sprintf("Successfully uploaded %d file(s)", len(res.URLs)))},
		)
	}
	actions = append(actions, UploadFinished{})
	d.dispatch(actions...)

	return res, err
}

// SubcategoriesOf lists the active subcategories of one category, for the
// product form's subcategory picker.
func (d *Dashboard) SubcategoriesOf(ctx context.Context, categoryID int64) ([]Subcategory, error) {
	rows, err := d.repos.Subcategories.GetByCategory(ctx, categoryID)
	if err != nil {
		d.log.WithError(err).WithField("category_id", categoryID).Error("subcategories by category failed")
		return nil, err
	}
	return mapRows(rows, NewSubcategory), nil
}

func (d *Dashboard) OrderDetails(ctx context.Context, id int64) (*models.Order, error) {
	return d.repos.Orders.GetOrderDetails(ctx, id)
}

// UpdateOrderStatus changes the status of an order and refreshes the
// order list.
func (d *Dashboard) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	order, err := d.repos.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		d.post(NoticeError, "Failed to update order status")
		return nil, err
	}
	d.post(NoticeSuccess, "Order status updated successfully")
	d.Orders.Refresh(ctx)
	return order, nil
}
