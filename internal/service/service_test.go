package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/course_shop/internal/db"
	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/repo"
)

type publishedEvent struct {
	topic string
	key   string
	event UserEvent
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{topic: topic, key: key, event: event.(UserEvent)})
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(context.Background(), db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	return gdb
}

func TestUserService_Lifecycle(t *testing.T) {
	gdb := newTestDB(t)
	pub := &fakePublisher{}
	svc := &UserService{Repo: &repo.UserRepo{DB: gdb}, Events: pub, Topic: "user_events"}
	ctx := context.Background()

	created, err := svc.Insert(ctx, &models.User{Name: "Bob Brown", Email: "bob@gmail.com", Phone: "977557755", Password: "123456"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, &models.User{Name: "Bob Green", Email: "bobgreen@gmail.com", Phone: "911111111", Password: "changed"})
	require.NoError(t, err)
	assert.Equal(t, "Bob Green", updated.Name)
	assert.Equal(t, "bobgreen@gmail.com", updated.Email)
	assert.Equal(t, "911111111", updated.Phone)
	assert.Equal(t, "123456", updated.Password)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, pub.events, 3)
	assert.Equal(t, EventUserCreated, pub.events[0].event.Type)
	assert.Equal(t, EventUserUpdated, pub.events[1].event.Type)
	assert.Equal(t, EventUserDeleted, pub.events[2].event.Type)
	for _, e := range pub.events {
		assert.Equal(t, "user_events", e.topic)
		assert.Equal(t, created.ID, e.event.UserID)
		assert.NotEmpty(t, e.event.EventID)
	}
	assert.NotEqual(t, pub.events[0].event.EventID, pub.events[1].event.EventID)
}

func TestUserService_NotFound(t *testing.T) {
	svc := &UserService{Repo: &repo.UserRepo{DB: newTestDB(t)}}
	ctx := context.Background()

	_, err := svc.Update(ctx, 10, &models.User{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 10), ErrNotFound)
}

func TestUserService_DeleteWithOrdersConflicts(t *testing.T) {
	gdb := newTestDB(t)
	users := &repo.UserRepo{DB: gdb}
	orders := &repo.OrderRepo{DB: gdb}
	svc := &UserService{Repo: users}
	ctx := context.Background()

	u, err := svc.Insert(ctx, &models.User{Name: "Maria Brown"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, models.NewOrder(time.Now(), models.Paid, u))
	require.NoError(t, err)

	err = svc.Delete(ctx, u.ID)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
}

func TestUserService_PublishFailureDoesNotFailInsert(t *testing.T) {
	svc := &UserService{Repo: &repo.UserRepo{DB: newTestDB(t)}, Events: &fakePublisher{err: errors.New("kafka down")}}

	_, err := svc.Insert(context.Background(), &models.User{Name: "Alex Green"})
	require.NoError(t, err)
}

func TestOrderService_RejectsInvalidStoredStatus(t *testing.T) {
	gdb := newTestDB(t)
	users := &repo.UserRepo{DB: gdb}
	orders := &repo.OrderRepo{DB: gdb}
	svc := &OrderService{Repo: orders}
	ctx := context.Background()

	u, err := users.Create(ctx, &models.User{Name: "Maria"})
	require.NoError(t, err)
	o, err := orders.Create(ctx, models.NewOrder(time.Now(), models.Paid, u))
	require.NoError(t, err)

	got, err := svc.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	require.NoError(t, gdb.Model(&models.Order{}).Where("id = ?", o.ID).Update("order_status", 0).Error)
	_, err = svc.FindByID(ctx, o.ID)
	require.ErrorIs(t, err, models.ErrInvalidStatusCode)
	_, err = svc.FindAll(ctx)
	require.ErrorIs(t, err, models.ErrInvalidStatusCode)

	_, err = svc.FindByID(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

type fakeSearcher struct {
	indexed []models.Product
	query   string
}

func (f *fakeSearcher) IndexProducts(_ context.Context, products []models.Product) error {
	f.indexed = append(f.indexed, products...)
	return nil
}

func (f *fakeSearcher) Search(_ context.Context, q string, _, _ int) (int64, []models.Product, error) {
	f.query = q
	return int64(len(f.indexed)), f.indexed, nil
}

func TestProductService_SearchAndReindex(t *testing.T) {
	gdb := newTestDB(t)
	products := &repo.ProductRepo{DB: gdb}
	searcher := &fakeSearcher{}
	svc := &ProductService{Repo: products, Search: searcher}
	ctx := context.Background()

	_, err := products.Create(ctx, &models.Product{Name: "Smart TV", Price: 2190})
	require.NoError(t, err)

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	total, found, err := svc.SearchProducts(ctx, "  tv ", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, "tv", searcher.query)

	_, _, err = svc.SearchProducts(ctx, "   ", 0, 10)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.FindByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService(t *testing.T) {
	gdb := newTestDB(t)
	categories := &repo.CategoryRepo{DB: gdb}
	svc := &CategoryService{Repo: categories}
	ctx := context.Background()

	c, err := categories.Create(ctx, &models.Category{Name: "Electronics"})
	require.NoError(t, err)

	got, err := svc.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.Name)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.FindByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}
