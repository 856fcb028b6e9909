package service

import (
	"errors"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// Cart holds the materialized view of a customer's cart.
type Cart struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice float64          `json:"total_price"`
}

type CartService interface {
	GetCart(customerID uint) (*Cart, error)
	AddToCart(customerID, productID uint, quantity int) (*Cart, error)
	UpdateQuantity(customerID, productID uint, quantity int) (*Cart, error)
	RemoveFromCart(customerID, productID uint) (*Cart, error)
	ClearCart(customerID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) buildCart(customerID uint) (*Cart, error) {
	items, err := s.cartRepo.FindByCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Items: items}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.TotalPrice += float64(item.Quantity) * item.Product.EffectivePrice()
	}
	return cart, nil
}

func (s *cartService) GetCart(customerID uint) (*Cart, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"customer_id": customerID,
	})

	cart, err := s.buildCart(customerID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Cart fetched successfully", map[string]interface{}{
		"customer_id": customerID,
		"line_count":  len(cart.Items),
		"total_items": cart.TotalItems,
	})
	return cart, nil
}

// AddToCart is additive: adding a product already in the cart bumps the
// existing line's quantity instead of creating a second line. The bump is
// an atomic SQL increment, so concurrent adds do not lose updates.
func (s *cartService) AddToCart(customerID, productID uint, quantity int) (*Cart, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"quantity":    quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for cart add", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart add", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	affected, err := s.cartRepo.IncrementQuantity(customerID, productID, quantity)
	if err != nil {
		logger.Error("Failed to increment cart quantity", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}

	if affected == 0 {
		item := &model.CartItem{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
		}
		if err := s.cartRepo.Create(item); err != nil {
			logger.Error("Failed to create cart item", err, map[string]interface{}{
				"customer_id": customerID,
				"product_id":  productID,
			})
			return nil, err
		}
	}

	logger.Info("Product added to cart successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return s.buildCart(customerID)
}

// UpdateQuantity replaces the line's quantity outright. A missing line is
// an error here, unlike AddToCart.
func (s *cartService) UpdateQuantity(customerID, productID uint, quantity int) (*Cart, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"quantity":    quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	affected, err := s.cartRepo.SetQuantity(customerID, productID, quantity)
	if err != nil {
		logger.Error("Failed to set cart item quantity", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}
	if affected == 0 {
		logger.Warn("Cart item not found for quantity update", map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, ErrCartItemNotFound
	}

	logger.Info("Cart item quantity updated successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return s.buildCart(customerID)
}

func (s *cartService) RemoveFromCart(customerID, productID uint) (*Cart, error) {
	logger.Info("Removing product from cart", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})

	if err := s.cartRepo.Delete(customerID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for removal", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  productID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}

	logger.Info("Product removed from cart successfully", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return s.buildCart(customerID)
}

func (s *cartService) ClearCart(customerID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"customer_id": customerID,
	})

	if err := s.cartRepo.DeleteByCustomerID(customerID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	logger.Info("Cart cleared successfully", map[string]interface{}{
		"customer_id": customerID,
	})
	return nil
}
