package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/course_shop/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id uint, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	AddCategory(ctx context.Context, productID, categoryID uint) error
}

type ProductRepo struct {
	DB *gorm.DB
}

var _ ProductRepository = (*ProductRepo)(nil)

// Create links the product to the given categories, which must already
// exist.
func (r *ProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = 0
	if err := r.DB.WithContext(ctx).Omit("Items", "Categories.*").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID also loads the product's items with their orders so that
// Product.Orders can be derived.
func (r *ProductRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Categories", orderByID).
		Preload("Items.Order").
		First(&product, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &product, nil
}

func (r *ProductRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := r.DB.WithContext(ctx).
		Preload("Categories", orderByID).
		Scopes(orderByID).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) Update(ctx context.Context, id uint, product *models.Product) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapNotFound(err)
		}
		product.ID = id
		if err := tx.Omit("Items", "Categories").Save(product).Error; err != nil {
			return err
		}
		return tx.Model(product).Association("Categories").Replace(product.Categories)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product := models.Product{ID: id}
		if err := tx.First(&product).Error; err != nil {
			return wrapNotFound(err)
		}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

func (r *ProductRepo) AddCategory(ctx context.Context, productID, categoryID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return wrapNotFound(err)
		}
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			return wrapNotFound(err)
		}
		return tx.Model(&product).Association("Categories").Append(&category)
	})
}
