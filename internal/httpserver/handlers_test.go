package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/course_shop/internal/db"
	"github.com/Skotchmaster/course_shop/internal/middleware/metrics"
	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/repo"
	"github.com/Skotchmaster/course_shop/internal/seed"
	"github.com/Skotchmaster/course_shop/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

type fakeSearch struct{}

func (fakeSearch) IndexProducts(context.Context, []models.Product) error { return nil }

func (fakeSearch) Search(_ context.Context, q string, _, _ int) (int64, []models.Product, error) {
	return 1, []models.Product{{ID: 2, Name: "Smart TV", Categories: []models.Category{}}}, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.Open(context.Background(), db.DriverSQLite, "file::memory:")
	require.NoError(t, err)

	users := &repo.UserRepo{DB: gdb}
	categories := &repo.CategoryRepo{DB: gdb}
	products := &repo.ProductRepo{DB: gdb}
	orders := &repo.OrderRepo{DB: gdb}
	require.NoError(t, seed.Run(context.Background(), seed.Repos{
		Users: users, Categories: categories, Products: products, Orders: orders,
	}))

	reg := prometheus.NewRegistry()
	e := echo.New()
	e.Use(metrics.New(reg).Middleware())
	Register(e, &Deps{
		DB:              gdb,
		UserHandler:     &UserHTTP{Svc: &service.UserService{Repo: users}},
		OrderHandler:    &OrderHTTP{Svc: &service.OrderService{Repo: orders}},
		ProductHandler:  &ProductHTTP{Svc: &service.ProductService{Repo: products, Search: fakeSearch{}}},
		CategoryHandler: &CategoryHTTP{Svc: &service.CategoryService{Repo: categories}},
		Gatherer:        reg,
		SearchEnabled:   true,
	})

	return &testEnv{T: t, E: e, DB: gdb}
}

func (env *testEnv) do(method, target string, body any) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestUsers_ListAndGet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]map[string]any](t, rec)
	require.Len(t, users, 2)
	assert.Equal(t, "Maria Brown", users[0]["name"])
	assert.NotContains(t, users[0], "orders")

	rec = env.do(http.MethodGet, "/users/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alex Green", decode[models.User](t, rec).Name)
}

func TestUsers_GetNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/users/99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[StandardError](t, rec)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "/users/99", body.Path)
	assert.NotEmpty(t, body.Timestamp)

	rec = env.do(http.MethodGet, "/users/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_CreateUpdateDelete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/users", models.User{Name: "Bob Brown", Email: "bob@gmail.com", Phone: "977557755", Password: "123456"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.User](t, rec)
	require.Equal(t, uint(3), created.ID)
	assert.Equal(t, "http://example.com/users/3", rec.Header().Get(echo.HeaderLocation))

	rec = env.do(http.MethodPut, "/users/3", map[string]any{"name": "Bob Green", "email": "bobgreen@gmail.com", "phone": "911111111"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.User](t, rec)
	assert.Equal(t, uint(3), updated.ID)
	assert.Equal(t, "Bob Green", updated.Name)
	assert.Equal(t, "123456", updated.Password)

	rec = env.do(http.MethodDelete, "/users/3", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/users/3", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/users/3", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers_MalformedBodies(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/users", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/users/1", `{"name": 5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/users/77", map[string]any{"name": "ghost"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers_DeleteOwnerOfOrdersConflicts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodDelete, "/users/1", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrders_GetWireFormat(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, body["id"])
	assert.Equal(t, "2019-06-20T19:53:07Z", body["moment"])
	assert.Equal(t, "PAID", body["orderStatus"])
	assert.Equal(t, 1431.0, body["total"])

	client := body["client"].(map[string]any)
	assert.Equal(t, "Maria Brown", client["name"])
	assert.NotContains(t, client, "orders")

	items := body["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.NotContains(t, first, "order")
	assert.Equal(t, 181.0, first["subTotal"])
	product := first["product"].(map[string]any)
	assert.Equal(t, "The Lord of the Rings", product["name"])
	assert.Len(t, product["categories"], 1)

	payment := body["payment"].(map[string]any)
	assert.EqualValues(t, 1, payment["id"])
	assert.Equal(t, "2019-06-20T21:53:07Z", payment["moment"])
	assert.NotContains(t, payment, "order")

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, uint(1), order.ClientID)
	total, err := order.Total()
	require.NoError(t, err)
	assert.Equal(t, 1431.0, total)
}

func TestOrders_ListAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]map[string]any](t, rec)
	require.Len(t, orders, 3)
	assert.Equal(t, "WAITING_PAYMENT", orders[1]["orderStatus"])
	assert.Nil(t, orders[1]["payment"])

	rec = env.do(http.MethodGet, "/orders/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders_InvalidStoredStatusIsServerError(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Model(&models.Order{}).Where("id = ?", 2).Update("order_status", 12).Error)

	rec := env.do(http.MethodGet, "/orders/2", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "invalid order status code", decode[StandardError](t, rec).Message)
}

func TestProducts_ListAndGet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[[]map[string]any](t, rec)
	require.Len(t, products, 5)
	assert.Equal(t, "Smart TV", products[1]["name"])
	assert.Len(t, products[1]["categories"], 2)
	assert.Contains(t, products[1], "imgUrl")

	rec = env.do(http.MethodGet, "/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode[map[string]any](t, rec)
	assert.Equal(t, "Macbook Pro", product["name"])
	assert.NotContains(t, product, "orders")

	rec = env.do(http.MethodGet, "/products/10", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_Search(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/products/search?q=tv&page=1&size=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Len(t, body["data"], 1)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 5, meta["size"])
	assert.EqualValues(t, 1, meta["total"])
	assert.Equal(t, false, meta["has_next"])

	rec = env.do(http.MethodGet, "/products/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories_ListAndGet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]map[string]any](t, rec)
	require.Len(t, categories, 3)
	assert.Equal(t, "Electronics", categories[0]["name"])
	assert.NotContains(t, categories[0], "products")

	rec = env.do(http.MethodGet, "/categories/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Books", decode[models.Category](t, rec).Name)

	rec = env.do(http.MethodGet, "/categories/9", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/live", nil).Code)
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/ready", nil).Code)

	env.do(http.MethodGet, "/users", nil)
	rec := env.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `endpoint="/users"`)
}

func TestUnknownRouteUsesStandardError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/nowhere", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[StandardError](t, rec)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "/nowhere", body.Path)
}
