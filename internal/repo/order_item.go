package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/course_shop/internal/models"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error)
	GetByID(ctx context.Context, key models.OrderItemPK) (*models.OrderItem, error)
	GetAll(ctx context.Context) ([]models.OrderItem, error)
	Update(ctx context.Context, key models.OrderItemPK, item *models.OrderItem) (*models.OrderItem, error)
	Delete(ctx context.Context, key models.OrderItemPK) error
}

type OrderItemRepo struct {
	DB *gorm.DB
}

var _ OrderItemRepository = (*OrderItemRepo)(nil)

func byKey(key models.OrderItemPK) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("order_id = ? AND product_id = ?", key.OrderID, key.ProductID)
	}
}

// Create is an upsert on the (order, product) key: storing an item whose
// key already exists overwrites its quantity and price.
func (r *OrderItemRepo) Create(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	if item.Product != nil && item.ProductID == 0 {
		item.ProductID = item.Product.ID
	}
	err := r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "price"}),
		}).
		Create(item).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *OrderItemRepo) GetByID(ctx context.Context, key models.OrderItemPK) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.DB.WithContext(ctx).Preload("Product").Scopes(byKey(key)).First(&item).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &item, nil
}

func (r *OrderItemRepo) GetAll(ctx context.Context) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Order("order_id ASC").Order("product_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderItemRepo) Update(ctx context.Context, key models.OrderItemPK, item *models.OrderItem) (*models.OrderItem, error) {
	updates := map[string]any{"quantity": nil, "price": nil}
	if item.Quantity != nil {
		updates["quantity"] = *item.Quantity
	}
	if item.Price != nil {
		updates["price"] = *item.Price
	}
	res := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Scopes(byKey(key)).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, wrapNotFound(gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, key)
}

func (r *OrderItemRepo) Delete(ctx context.Context, key models.OrderItemPK) error {
	res := r.DB.WithContext(ctx).Scopes(byKey(key)).Delete(&models.OrderItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
