package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/models"
)

func (r *GormRepo) GetOwner(ctx context.Context, id uint) (*models.ProductOwner, error) {
	var owner models.ProductOwner
	if err := r.DB.WithContext(ctx).First(&owner, id).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *GormRepo) GetOwnerByEmail(ctx context.Context, email string) (*models.ProductOwner, error) {
	var owner models.ProductOwner
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *GormRepo) GetOwnerByPhone(ctx context.Context, phone string) (*models.ProductOwner, error) {
	var owner models.ProductOwner
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *GormRepo) CreateOwner(ctx context.Context, owner *models.ProductOwner) error {
	return r.DB.WithContext(ctx).Create(owner).Error
}

// DeleteOwner removes the owner and cascades over its products, clearing each
// product's size/color rows first, in a single transaction.
func (r *GormRepo) DeleteOwner(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Where("product_owner_id = ?", id).Find(&products).Error; err != nil {
			return err
		}
		for _, p := range products {
			if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductColor{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Product{}, p.ID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.ProductOwner{}, id).Error
	})
}
