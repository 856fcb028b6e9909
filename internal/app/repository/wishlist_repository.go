package repository

import (
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByCustomerID(customerID uint) ([]model.WishlistItem, error)
	ExistsByCustomerAndProduct(customerID, productID uint) (bool, error)
	Delete(customerID, productID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"customer_id": item.CustomerID,
		"product_id":  item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"customer_id": item.CustomerID,
			"product_id":  item.ProductID,
		})
		return err
	}

	return nil
}

func (r *wishlistRepository) FindByCustomerID(customerID uint) ([]model.WishlistItem, error) {
	logger.Debug("Finding wishlist items by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var items []model.WishlistItem
	err := r.db.Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Debug("Wishlist items found by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(items),
	})
	return items, nil
}

func (r *wishlistRepository) ExistsByCustomerAndProduct(customerID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.WishlistItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check wishlist item existence in database", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *wishlistRepository) Delete(customerID, productID uint) error {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})

	result := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&model.WishlistItem{})
	if result.Error != nil {
		logger.Error("Failed to delete wishlist item from database", result.Error, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
