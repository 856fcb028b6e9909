package repository

import (
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByCustomerID(customerID uint) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	Transition(id uint, from []model.OrderStatus, updates map[string]interface{}) (int64, error)
	UpdateCodPaid(id uint, paid bool) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"customer_id":  order.CustomerID,
		"order_number": order.OrderNumber,
		"item_count":   len(order.OrderItems),
		"total_price":  order.TotalPrice,
	})

	// Single insert covers the order and its items through the association.
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"customer_id":  order.CustomerID,
			"order_number": order.OrderNumber,
		})
		return err
	}

	logger.Info("Order created in database", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"customer_id":  order.CustomerID,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	err := r.db.Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("Customer").
		First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindByCustomerID(customerID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var orders []model.Order
	err := r.db.Preload("OrderItems").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Debug("Orders found by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	logger.Debug("Finding all orders in database", nil)

	var orders []model.Order
	err := r.db.Preload("OrderItems").
		Preload("Customer").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find all orders in database", err, nil)
		return nil, err
	}

	logger.Debug("All orders found in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

// Transition applies updates only when the order is currently in one of the
// from statuses. The status precondition and the write happen in a single
// conditional UPDATE, so two racing transitions can never both succeed.
// Returns the number of rows changed; zero means the precondition failed or
// the order does not exist, which the caller must disambiguate.
func (r *orderRepository) Transition(id uint, from []model.OrderStatus, updates map[string]interface{}) (int64, error) {
	logger.Debug("Transitioning order status in database", map[string]interface{}{
		"order_id":    id,
		"from":        from,
		"next_status": updates["order_status"],
	})

	result := r.db.Model(&model.Order{}).
		Where("id = ? AND order_status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to transition order status in database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return 0, result.Error
	}

	logger.Debug("Order status transition applied in database", map[string]interface{}{
		"order_id":      id,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *orderRepository) UpdateCodPaid(id uint, paid bool) error {
	logger.Debug("Updating order COD paid flag in database", map[string]interface{}{
		"order_id": id,
		"paid":     paid,
	})

	err := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Update("payment_cod_paid", paid).Error
	if err != nil {
		logger.Error("Failed to update order COD paid flag in database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}

	return nil
}
