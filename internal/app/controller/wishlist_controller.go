package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsharma/shopmitra-backend/internal/app/service"
	"github.com/nsharma/shopmitra-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist returns the caller's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to wishlist", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	items, err := ctrl.wishlistService.GetWishlist(customerID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"customer_id": customerID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": items,
		"count":    len(items),
	})
}

// AddToWishlist adds a product to the wishlist
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to wishlist", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to wishlist request", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := ctrl.wishlistService.AddToWishlist(customerID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for wishlist", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  req.ProductID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		if errors.Is(err, service.ErrWishlistDuplicate) {
			log.Warn("Duplicate wishlist add", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  req.ProductID,
			})
			c.JSON(http.StatusConflict, gin.H{
				"error": "Product already in wishlist",
			})
			return
		}
		log.Error("Failed to add item to wishlist", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  req.ProductID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to wishlist",
		})
		return
	}

	log.Info("Item added to wishlist successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  req.ProductID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to wishlist successfully",
		"item":    item,
	})
}

// RemoveFromWishlist deletes a product from the wishlist
// DELETE /api/v1/wishlist/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := ctrl.wishlistService.RemoveFromWishlist(customerID, productID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Wishlist item not found",
			})
			return
		}
		log.Error("Failed to remove wishlist item", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove wishlist item",
		})
		return
	}

	log.Info("Wishlist item removed successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist item removed successfully",
	})
}
