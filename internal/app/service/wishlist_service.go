package service

import (
	"errors"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWishlistDuplicate    = errors.New("product already in wishlist")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

type WishlistService interface {
	GetWishlist(customerID uint) ([]model.WishlistItem, error)
	AddToWishlist(customerID, productID uint) (*model.WishlistItem, error)
	RemoveFromWishlist(customerID, productID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetWishlist(customerID uint) ([]model.WishlistItem, error) {
	logger.Debug("Fetching wishlist", map[string]interface{}{
		"customer_id": customerID,
	})

	items, err := s.wishlistRepo.FindByCustomerID(customerID)
	if err != nil {
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Wishlist fetched successfully", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(items),
	})
	return items, nil
}

// AddToWishlist rejects duplicates: a product can appear at most once per
// customer. The pre-check gives a clean error for the common case and the
// unique index backstops concurrent inserts.
func (s *wishlistService) AddToWishlist(customerID, productID uint) (*model.WishlistItem, error) {
	logger.Info("Adding product to wishlist", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for wishlist add", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for wishlist add", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	exists, err := s.wishlistRepo.ExistsByCustomerAndProduct(customerID, productID)
	if err != nil {
		logger.Error("Failed to check wishlist for duplicate", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}
	if exists {
		logger.Warn("Product already in wishlist", map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, ErrWishlistDuplicate
	}

	item := &model.WishlistItem{
		CustomerID: customerID,
		ProductID:  productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		logger.Error("Failed to create wishlist item", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}

	logger.Info("Product added to wishlist successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return item, nil
}

func (s *wishlistService) RemoveFromWishlist(customerID, productID uint) error {
	logger.Info("Removing product from wishlist", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})

	if err := s.wishlistRepo.Delete(customerID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Wishlist item not found for removal", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  productID,
			})
			return ErrWishlistItemNotFound
		}
		logger.Error("Failed to remove wishlist item", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return err
	}

	logger.Info("Product removed from wishlist successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return nil
}
