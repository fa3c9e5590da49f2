package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/course_shop/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id uint, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id uint) error
}

type OrderRepo struct {
	DB *gorm.DB
}

var _ OrderRepository = (*OrderRepo)(nil)

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("product_id ASC") }).
		Preload("Items.Product.Categories", orderByID).
		Preload("Payment")
}

// Create stores the order together with its items and payment. Items and
// payment take the order's new ID.
func (r *OrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.Client != nil && order.ClientID == 0 {
			order.ClientID = order.Client.ID
		}
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if order.Items[i].Product != nil && order.Items[i].ProductID == 0 {
				order.Items[i].ProductID = order.Items[i].Product.ID
			}
			if err := tx.Omit(clause.Associations).Create(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		if order.Payment != nil {
			order.SetPayment(order.Payment)
			if err := tx.Create(order.Payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Scopes(preloadOrder).First(&order, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &order, nil
}

func (r *OrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.DB.WithContext(ctx).Scopes(preloadOrder, orderByID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update replaces the order's own columns and upserts its payment. Items are
// managed through the order item port.
func (r *OrderRepo) Update(ctx context.Context, id uint, order *models.Order) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Order
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapNotFound(err)
		}
		order.ID = id
		if order.Client != nil {
			order.ClientID = order.Client.ID
		}
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if order.Payment != nil {
			order.SetPayment(order.Payment)
			return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(order.Payment).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the order with its payment and items.
func (r *OrderRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return wrapNotFound(err)
		}
		if err := tx.Delete(&models.Payment{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}
