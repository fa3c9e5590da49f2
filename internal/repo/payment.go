package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/course_shop/internal/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	GetAll(ctx context.Context) ([]models.Payment, error)
	Update(ctx context.Context, id uint, payment *models.Payment) (*models.Payment, error)
	Delete(ctx context.Context, id uint) error
}

type PaymentRepo struct {
	DB *gorm.DB
}

var _ PaymentRepository = (*PaymentRepo)(nil)

// Create stores a payment for the order with the same ID. The order must
// exist.
func (r *PaymentRepo) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, payment.ID).Error; err != nil {
			return wrapNotFound(err)
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &payment, nil
}

func (r *PaymentRepo) GetAll(ctx context.Context) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := r.DB.WithContext(ctx).Scopes(orderByID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepo) Update(ctx context.Context, id uint, payment *models.Payment) (*models.Payment, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	payment.ID = id
	if err := r.DB.WithContext(ctx).Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
