package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/service"
	"github.com/nsharma/shopmitra-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func (r *AddressRequest) toModel() *model.Address {
	return &model.Address{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		IsDefault:  r.IsDefault,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GetAddresses returns the caller's address book
// GET /api/v1/addresses
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to addresses", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	addresses, err := ctrl.addressService.GetCustomerAddresses(customerID)
	if err != nil {
		log.Error("Failed to fetch addresses", err, map[string]interface{}{
			"customer_id": customerID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch addresses",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// GetAddress returns a single address
// GET /api/v1/addresses/:id
func (ctrl *AddressController) GetAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		log.Warn("Invalid address ID format", map[string]interface{}{
			"customer_id": customerID,
			"address_id":  c.Param("id"),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	address, err := ctrl.addressService.GetAddress(customerID, addressID)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to fetch address", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch address",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// CreateAddress adds an address to the caller's address book
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create address", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create address request", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address := req.toModel()
	if err := ctrl.addressService.CreateAddress(customerID, address); err != nil {
		log.Error("Failed to create address", err, map[string]interface{}{
			"customer_id": customerID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create address",
		})
		return
	}

	log.Info("Address created successfully", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  address.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"address": address,
	})
}

// UpdateAddress replaces the fields of an address
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update address request", map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address, err := ctrl.addressService.UpdateAddress(customerID, addressID, req.toModel())
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to update address", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update address",
		})
		return
	}

	log.Info("Address updated successfully", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"address": address,
	})
}

// DeleteAddress removes an address from the caller's address book
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	if err := ctrl.addressService.DeleteAddress(customerID, addressID); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to delete address", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete address",
		})
		return
	}

	log.Info("Address deleted successfully", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}

// SetDefaultAddress marks an address as the default
// PUT /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	address, err := ctrl.addressService.SetDefaultAddress(customerID, addressID)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to set default address", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to set default address",
		})
		return
	}

	log.Info("Default address set successfully", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address set successfully",
		"address": address,
	})
}
