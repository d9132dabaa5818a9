package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/dashboard"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway/gatewaytest"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/renderer"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/sessions"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret-pass"
)

type stubUploader struct {
	urls      []string
	namespace string
}

func (s *stubUploader) Upload(ctx context.Context, field services.MediaField, namespace string, files []services.UploadFile) (services.UploadResult, error) {
	s.namespace = namespace
	return services.UploadResult{URLs: s.urls[:len(files)]}, nil
}

type apiClient struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func (c *apiClient) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

func (c *apiClient) send(req *http.Request, out interface{}) int {
	c.t.Helper()
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type dashboardBody struct {
	Categories []dashboard.Category `json:"categories"`
	Products   []dashboard.Product  `json:"products"`
	Notices    []dashboard.Notice   `json:"notices"`
	Form       dashboard.Form       `json:"form"`
	Labels     map[string]string    `json:"labels"`
	Section    string               `json:"section"`
	Revenue    string               `json:"revenue_label"`
	Modal      struct {
		Mode string `json:"mode"`
	} `json:"modal"`
}

func (b dashboardBody) messages() []string {
	out := make([]string, 0, len(b.Notices))
	for _, n := range b.Notices {
		out = append(out, n.Message)
	}
	return out
}

func seed(t *testing.T) *gateway.DB {
	conn := gatewaytest.OpenDB(t,
		&models.Category{}, &models.Subcategory{}, &models.Product{},
		&models.AppUser{}, &models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.Banner{},
	)
	require.NoError(t, conn.Create(&models.Category{Name: "Fantasy", IsActive: true, SortOrder: 1}).Error)
	require.NoError(t, conn.Create(&[]models.Subcategory{
		{Name: "Dragons", CategoryID: 1, IsActive: true, SortOrder: 2},
		{Name: "Quests", CategoryID: 1, IsActive: true, SortOrder: 1},
		{Name: "Retired", CategoryID: 1, IsActive: false, SortOrder: 3},
	}).Error)
	require.NoError(t, conn.Create(&models.Product{Title: "Moon", Price: decimal.NewFromInt(12), Category: "Fantasy", IsActive: true}).Error)

	ada := models.Customer{FirstName: "Ada", LastName: "Lee", Email: "ada@example.com", Status: models.CustomerStatusActive}
	require.NoError(t, conn.Create(&ada).Error)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, conn.Create(&[]models.Order{
		{OrderNumber: "ORD-1", Status: models.OrderStatusProcessing, TotalAmount: decimal.NewFromInt(30), CustomerID: &ada.ID, CreatedAt: base},
		{OrderNumber: "ORD-2", Status: models.OrderStatusPending, TotalAmount: decimal.NewFromInt(10), CreatedAt: base.Add(time.Hour)},
	}).Error)
	return gateway.NewDB(conn, gatewaytest.Logger())
}

func newAPI(t *testing.T) (*apiClient, *stubUploader) {
	t.Helper()
	log := gatewaytest.Logger()
	gw := seed(t)
	caps := gateway.NewCapabilities(map[gateway.Capability]bool{gateway.MediaColumns: true})

	tr, err := i18n.New()
	require.NoError(t, err)
	val, err := dashboard.NewValidator(tr)
	require.NoError(t, err)
	hash, err := services.HashPassword(adminPassword)
	require.NoError(t, err)

	uploader := &stubUploader{urls: []string{"https://cdn/1.png", "https://cdn/2.png"}}
	repos := dashboard.NewRepositories(gw, caps, log)
	registry := dashboard.NewRegistry(func() *dashboard.Dashboard {
		return dashboard.New(repos, uploader, val, log)
	})

	handler := NewRouter(Dependencies{
		Render:       renderer.New(false),
		SessionStore: sessions.NewCookieSessionStore(log, false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)),
		Auth:         services.NewLocalAuth(adminEmail, hash),
		Registry:     registry,
		Translator:   tr,
		Log:          log,
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &apiClient{t: t, srv: srv, client: &http.Client{Jar: jar}}, uploader
}

func (c *apiClient) login() {
	c.t.Helper()
	status := c.do(http.MethodPost, "/login", map[string]string{"email": adminEmail, "password": adminPassword}, nil)
	require.Equal(c.t, http.StatusOK, status)
}

func TestHealthz(t *testing.T) {
	api, _ := newAPI(t)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", nil, nil))
}

func TestAuthFlow(t *testing.T) {
	api, _ := newAPI(t)

	var failure renderer.Error
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/dashboard", nil, &failure))

	status := api.do(http.MethodPost, "/login", map[string]string{"email": adminEmail, "password": "wrong"}, &failure)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password.", failure.Error)

	api.login()
	var session struct {
		Authenticated bool   `json:"authenticated"`
		Email         string `json:"email"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/session", nil, &session))
	assert.True(t, session.Authenticated)
	assert.Equal(t, adminEmail, session.Email)

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/dashboard", nil, nil))
}

func TestDashboardLoadsOnFirstRequest(t *testing.T) {
	api, _ := newAPI(t)
	api.login()

	var body dashboardBody
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/dashboard", nil, &body))
	require.Len(t, body.Categories, 1)
	assert.EqualValues(t, 1, body.Categories[0].Count)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "$12.00", body.Products[0].PriceLabel)
	assert.Equal(t, "$40.00", body.Revenue)
	assert.Equal(t, "Orders", body.Labels["nav.orders"])

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/dashboard/section", map[string]string{"section": "orders"}, &body))
	assert.Equal(t, "orders", body.Section)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/dashboard/section", map[string]string{"section": "nope"}, nil))
}

func TestAddAndDeleteCategory(t *testing.T) {
	api, _ := newAPI(t)
	api.login()

	var failure renderer.Error
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/save", nil, &failure))

	var body dashboardBody
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/modal", map[string]string{"mode": "add", "kind": "category"}, &body))
	assert.Equal(t, "add", body.Modal.Mode)

	require.Equal(t, http.StatusUnprocessableEntity, api.do(http.MethodPost, "/api/save", nil, &failure))
	assert.Equal(t, "Please enter a category name", failure.Error)
	assert.Contains(t, failure.Fields, "name")

	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, "/api/form", map[string]string{"name": "Poetry"}, &body))
	assert.Equal(t, "Poetry", body.Form["name"])

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/save", nil, &body))
	require.Len(t, body.Categories, 2)
	assert.Equal(t, "Poetry", body.Categories[1].Name)
	assert.Contains(t, body.messages(), "Category added successfully!")
	assert.Empty(t, body.Modal.Mode)

	id := body.Categories[1].ID
	path := "/api/entities/category/" + jsonInt(id)
	assert.Equal(t, http.StatusPreconditionRequired, api.do(http.MethodDelete, path, nil, nil))
	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, path+"?confirm=true", nil, &body))
	assert.Len(t, body.Categories, 1)
}

func jsonInt(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestOrdersListAndStatus(t *testing.T) {
	api, _ := newAPI(t)
	api.login()

	var list struct {
		Rows []struct {
			OrderNumber  string `json:"order_number"`
			CustomerName string `json:"customer_name"`
			TotalLabel   string `json:"total_label"`
		} `json:"rows"`
		Page    int  `json:"page"`
		HasNext bool `json:"has_next"`
		HasPrev bool `json:"has_prev"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders?status=processing&q=lee", nil, &list))
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "ORD-1", list.Rows[0].OrderNumber)
	assert.Equal(t, "Ada Lee", list.Rows[0].CustomerName)
	assert.Equal(t, "$30.00", list.Rows[0].TotalLabel)
	assert.False(t, list.HasNext)
	assert.False(t, list.HasPrev)

	var details struct {
		OrderNumber   string `json:"order_number"`
		Items         []any  `json:"items"`
		SubtotalLabel string `json:"subtotal_label"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders/1", nil, &details))
	assert.Equal(t, "ORD-1", details.OrderNumber)
	assert.Empty(t, details.Items)
	assert.Equal(t, "$0.00", details.SubtotalLabel)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/orders/99", nil, nil))

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, "/api/orders/1/status", map[string]string{"status": "lost"}, nil))
	var updated struct {
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, "/api/orders/1/status", map[string]string{"status": "shipped"}, &updated))
	assert.Equal(t, "shipped", updated.Status)

	var customers struct {
		Rows []struct {
			Name string `json:"name"`
		} `json:"rows"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/customers?q=ada", nil, &customers))
	require.Len(t, customers.Rows, 1)
	assert.Equal(t, "Ada Lee", customers.Rows[0].Name)
}

func (c *apiClient) upload(field string, names ...string) (int, map[string]interface{}) {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(c.t, err)
		_, err = part.Write([]byte("png"))
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, c.srv.URL+"/api/media/"+field, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out map[string]interface{}
	return c.send(req, &out), out
}

func TestUploadMedia(t *testing.T) {
	api, uploader := newAPI(t)
	api.login()

	status, _ := api.upload("images", "a.png")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.upload("covers", "a.png")
	assert.Equal(t, http.StatusBadRequest, status)

	var body dashboardBody
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/dashboard", nil, &body))
	require.Len(t, body.Products, 1)
	open := map[string]interface{}{"mode": "edit", "kind": "product", "id": body.Products[0].ID}
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/modal", open, &body))

	status, out := api.upload("images", "a.png", "b.png")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out["urls"], 2)
	assert.Equal(t, jsonInt(body.Products[0].ID), uploader.namespace)

	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/media/images/0", nil, &body))
	assert.Equal(t, []interface{}{"https://cdn/2.png"}, body.Form["images"])
}

func TestPreferences(t *testing.T) {
	api, _ := newAPI(t)
	api.login()

	var prefs struct {
		Theme    string            `json:"theme"`
		Language string            `json:"language"`
		Labels   map[string]string `json:"labels"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/preferences/language", map[string]string{"value": "ar"}, &prefs))
	assert.Equal(t, "ar", prefs.Language)
	assert.Equal(t, "الطلبات", prefs.Labels["nav.orders"])

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/preferences/theme", map[string]string{"value": "neon"}, nil))
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/preferences/theme", map[string]string{"value": "dark"}, &prefs))
	assert.Equal(t, "dark", prefs.Theme)

	var body dashboardBody
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/dashboard", nil, &body))
	assert.Equal(t, "الطلبات", body.Labels["nav.orders"])
}

func TestCSRFProtectsWrites(t *testing.T) {
	log := gatewaytest.Logger()
	handler := NewRouter(Dependencies{
		Render:       renderer.New(false),
		SessionStore: sessions.NewCookieSessionStore(log, false, securecookie.GenerateRandomKey(32)),
		Auth:         services.NewLocalAuth(adminEmail, "x"),
		Registry:     dashboard.NewRegistry(nil),
		Log:          log,
		CSRFKey:      securecookie.GenerateRandomKey(32),
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-CSRF-Token"))
}

func TestSubcategoriesByCategory(t *testing.T) {
	api, _ := newAPI(t)
	api.login()

	var list struct {
		CategoryID int64 `json:"category_id"`
		Rows       []struct {
			Name         string `json:"name"`
			CategoryName string `json:"category_name"`
		} `json:"rows"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/categories/1/subcategories", nil, &list))
	assert.EqualValues(t, 1, list.CategoryID)
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "Quests", list.Rows[0].Name)
	assert.Equal(t, "Dragons", list.Rows[1].Name)
	assert.Equal(t, "Fantasy", list.Rows[0].CategoryName)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/categories/9/subcategories", nil, &list))
	assert.Empty(t, list.Rows)
}
