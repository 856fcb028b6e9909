package repository

import (
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByCustomerID(customerID uint) ([]model.Address, error)
	FindByCustomerAndID(customerID, addressID uint) (*model.Address, error)
	Update(address *model.Address) error
	Delete(customerID, addressID uint) error
	ClearOtherDefaults(customerID, keepAddressID uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"customer_id": address.CustomerID,
		"full_name":   address.FullName,
		"city":        address.City,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"customer_id": address.CustomerID,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id":  address.ID,
		"customer_id": address.CustomerID,
	})
	return nil
}

func (r *addressRepository) FindByCustomerID(customerID uint) ([]model.Address, error) {
	logger.Debug("Finding addresses by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var addresses []model.Address
	err := r.db.Where("customer_id = ?", customerID).
		Order("updated_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Debug("Addresses found by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(addresses),
	})
	return addresses, nil
}

func (r *addressRepository) FindByCustomerAndID(customerID, addressID uint) (*model.Address, error) {
	logger.Debug("Finding address by customer and ID in database", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	var address model.Address
	err := r.db.Where("id = ? AND customer_id = ?", addressID, customerID).
		First(&address).Error
	if err != nil {
		logger.Error("Failed to find address by customer and ID in database", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		return nil, err
	}

	return &address, nil
}

func (r *addressRepository) Update(address *model.Address) error {
	logger.Debug("Updating address in database", map[string]interface{}{
		"address_id":  address.ID,
		"customer_id": address.CustomerID,
	})

	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id":  address.ID,
			"customer_id": address.CustomerID,
		})
		return err
	}

	return nil
}

func (r *addressRepository) Delete(customerID, addressID uint) error {
	logger.Debug("Deleting address from database", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	result := r.db.Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&model.Address{})
	if result.Error != nil {
		logger.Error("Failed to delete address from database", result.Error, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Address deleted from database", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})
	return nil
}

// ClearOtherDefaults unsets is_default on every address of the customer
// except keepAddressID. Runs in a transaction so a partial bulk update never
// leaves the set half-cleared, but concurrent calls for different addresses
// of the same customer can still race (last writer wins).
func (r *addressRepository) ClearOtherDefaults(customerID, keepAddressID uint) error {
	logger.Debug("Clearing other default addresses", map[string]interface{}{
		"customer_id":     customerID,
		"keep_address_id": keepAddressID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.Address{}).
			Where("customer_id = ? AND id <> ?", customerID, keepAddressID).
			Update("is_default", false).Error
	})
	if err != nil {
		logger.Error("Failed to clear other default addresses", err, map[string]interface{}{
			"customer_id":     customerID,
			"keep_address_id": keepAddressID,
		})
		return err
	}

	return nil
}
