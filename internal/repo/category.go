package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/course_shop/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id uint, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryRepo struct {
	DB *gorm.DB
}

var _ CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.ID = 0
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &category, nil
}

func (r *CategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.DB.WithContext(ctx).Scopes(orderByID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id uint, category *models.Category) (*models.Category, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	category.ID = id
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category := models.Category{ID: id}
		if err := tx.First(&category).Error; err != nil {
			return wrapNotFound(err)
		}
		if err := tx.Model(&category).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
