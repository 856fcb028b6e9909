package service

import (
	"errors"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService interface {
	GetCustomerAddresses(customerID uint) ([]model.Address, error)
	GetAddress(customerID, addressID uint) (*model.Address, error)
	CreateAddress(customerID uint, address *model.Address) error
	UpdateAddress(customerID, addressID uint, updated *model.Address) (*model.Address, error)
	DeleteAddress(customerID, addressID uint) error
	SetDefaultAddress(customerID, addressID uint) (*model.Address, error)
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{
		addressRepo: addressRepo,
	}
}

func (s *addressService) GetCustomerAddresses(customerID uint) ([]model.Address, error) {
	logger.Debug("Fetching customer addresses", map[string]interface{}{
		"customer_id": customerID,
	})

	addresses, err := s.addressRepo.FindByCustomerID(customerID)
	if err != nil {
		logger.Error("Failed to fetch customer addresses", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Customer addresses fetched successfully", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(addresses),
	})
	return addresses, nil
}

// GetAddress looks the address up scoped to the customer, so an address
// belonging to someone else is indistinguishable from one that does not
// exist.
func (s *addressService) GetAddress(customerID, addressID uint) (*model.Address, error) {
	logger.Debug("Fetching address", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	address, err := s.addressRepo.FindByCustomerAndID(customerID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Address not found", map[string]interface{}{
				"customer_id": customerID,
				"address_id":  addressID,
			})
			return nil, ErrAddressNotFound
		}
		logger.Error("Failed to fetch address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	return address, nil
}

func (s *addressService) CreateAddress(customerID uint, address *model.Address) error {
	logger.Info("Creating address", map[string]interface{}{
		"customer_id": customerID,
		"full_name":   address.FullName,
		"city":        address.City,
	})

	address.CustomerID = customerID

	// The first address a customer saves becomes the default.
	existing, err := s.addressRepo.FindByCustomerID(customerID)
	if err != nil {
		logger.Error("Failed to check existing addresses", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}
	if len(existing) == 0 {
		address.IsDefault = true
		logger.Debug("Setting first address as default", map[string]interface{}{
			"customer_id": customerID,
		})
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	// At most one default per customer. Clearing the others after the
	// insert keeps the new address's flag authoritative.
	if address.IsDefault {
		if err := s.addressRepo.ClearOtherDefaults(customerID, address.ID); err != nil {
			logger.Error("Failed to clear other default addresses", err, map[string]interface{}{
				"customer_id": customerID,
				"address_id":  address.ID,
			})
			return err
		}
	}

	logger.Info("Address created successfully", map[string]interface{}{
		"address_id":  address.ID,
		"customer_id": customerID,
		"is_default":  address.IsDefault,
	})
	return nil
}

func (s *addressService) UpdateAddress(customerID, addressID uint, updated *model.Address) (*model.Address, error) {
	logger.Info("Updating address", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	address, err := s.addressRepo.FindByCustomerAndID(customerID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Address not found for update", map[string]interface{}{
				"customer_id": customerID,
				"address_id":  addressID,
			})
			return nil, ErrAddressNotFound
		}
		logger.Error("Failed to fetch address for update", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	address.FullName = updated.FullName
	address.Phone = updated.Phone
	address.Line1 = updated.Line1
	address.Line2 = updated.Line2
	address.City = updated.City
	address.State = updated.State
	address.PostalCode = updated.PostalCode
	if updated.Country != "" {
		address.Country = updated.Country
	}

	becameDefault := updated.IsDefault && !address.IsDefault
	address.IsDefault = updated.IsDefault

	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to update address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	if becameDefault {
		if err := s.addressRepo.ClearOtherDefaults(customerID, addressID); err != nil {
			logger.Error("Failed to clear other default addresses", err, map[string]interface{}{
				"customer_id": customerID,
				"address_id":  addressID,
			})
			return nil, err
		}
	}

	logger.Info("Address updated successfully", map[string]interface{}{
		"address_id": addressID,
	})
	return address, nil
}

func (s *addressService) DeleteAddress(customerID, addressID uint) error {
	logger.Info("Deleting address", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	if err := s.addressRepo.Delete(customerID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Address not found for deletion", map[string]interface{}{
				"customer_id": customerID,
				"address_id":  addressID,
			})
			return ErrAddressNotFound
		}
		logger.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return err
	}

	logger.Info("Address deleted successfully", map[string]interface{}{
		"address_id": addressID,
	})
	return nil
}

func (s *addressService) SetDefaultAddress(customerID, addressID uint) (*model.Address, error) {
	logger.Info("Setting default address", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	address, err := s.addressRepo.FindByCustomerAndID(customerID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Address not found for default change", map[string]interface{}{
				"customer_id": customerID,
				"address_id":  addressID,
			})
			return nil, ErrAddressNotFound
		}
		logger.Error("Failed to fetch address for default change", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	if !address.IsDefault {
		address.IsDefault = true
		if err := s.addressRepo.Update(address); err != nil {
			logger.Error("Failed to mark address as default", err, map[string]interface{}{
				"address_id": addressID,
			})
			return nil, err
		}
	}

	if err := s.addressRepo.ClearOtherDefaults(customerID, addressID); err != nil {
		logger.Error("Failed to clear other default addresses", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		return nil, err
	}

	logger.Info("Default address set successfully", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})
	return address, nil
}
