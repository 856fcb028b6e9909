package repository

import (
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *model.CartItem) error
	FindByCustomerID(customerID uint) ([]model.CartItem, error)
	FindByCustomerAndProduct(customerID, productID uint) (*model.CartItem, error)
	IncrementQuantity(customerID, productID uint, delta int) (int64, error)
	SetQuantity(customerID, productID uint, quantity int) (int64, error)
	Delete(customerID, productID uint) error
	DeleteByCustomerID(customerID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"customer_id": item.CustomerID,
		"product_id":  item.ProductID,
		"quantity":    item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"customer_id": item.CustomerID,
			"product_id":  item.ProductID,
		})
		return err
	}

	return nil
}

func (r *cartRepository) FindByCustomerID(customerID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var items []model.CartItem
	err := r.db.Preload("Product").
		Where("customer_id = ?", customerID).
		Order("updated_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(items),
	})
	return items, nil
}

func (r *cartRepository) FindByCustomerAndProduct(customerID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Preload("Product").
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// IncrementQuantity bumps the line quantity with a single atomic UPDATE so
// concurrent adds for the same line never lose an increment. Returns the
// number of rows touched; zero means no line exists for the pair yet.
func (r *cartRepository) IncrementQuantity(customerID, productID uint, delta int) (int64, error) {
	logger.Debug("Incrementing cart item quantity in database", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"delta":       delta,
	})

	result := r.db.Model(&model.CartItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		logger.Error("Failed to increment cart item quantity in database", result.Error, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *cartRepository) SetQuantity(customerID, productID uint, quantity int) (int64, error) {
	logger.Debug("Setting cart item quantity in database", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"quantity":    quantity,
	})

	result := r.db.Model(&model.CartItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to set cart item quantity in database", result.Error, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *cartRepository) Delete(customerID, productID uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})

	result := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart item from database", result.Error, map[string]interface{}{
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

func (r *cartRepository) DeleteByCustomerID(customerID uint) error {
	logger.Debug("Clearing cart in database", map[string]interface{}{
		"customer_id": customerID,
	})

	err := r.db.Where("customer_id = ?", customerID).Delete(&model.CartItem{}).Error
	if err != nil {
		logger.Error("Failed to clear cart in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	return nil
}
