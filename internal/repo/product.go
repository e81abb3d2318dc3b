package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Sizes", sortedByPosition).
		Preload("Colors", sortedByPosition).
		Preload("ProductOwner").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Sizes", sortedByPosition).
		Preload("Colors", sortedByPosition).
		Preload("ProductOwner").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListApprovedProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Sizes", sortedByPosition).
		Preload("Colors", sortedByPosition).
		Preload("ProductOwner").
		Where("approved = ?", true).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListProductsByOwner(ctx context.Context, ownerID uint) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Sizes", sortedByPosition).
		Preload("Colors", sortedByPosition).
		Preload("ProductOwner").
		Where("product_owner_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

// DeleteProduct removes the size/color rows before the product row itself so
// the collection tables never hold orphans, all inside one transaction.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductColor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

func (r *GormRepo) CountProductSizes(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.ProductSize{}).
		Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountProductColors(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.ProductColor{}).
		Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func sortedByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
