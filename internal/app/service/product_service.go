package service

import (
	"errors"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidSalePrice = errors.New("sale price must be below the regular price")
)

// ProductList pages the catalog.
type ProductList struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ProductService interface {
	GetProducts(filter repository.ProductFilter) (*ProductList, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id uint, updated *model.Product) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) GetProducts(filter repository.ProductFilter) (*ProductList, error) {
	logger.Debug("Fetching products", map[string]interface{}{
		"keyword":     filter.Keyword,
		"category_id": filter.CategoryID,
		"page":        filter.Page,
	})

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	products, total, err := s.productRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to fetch products", err, nil)
		return nil, err
	}

	logger.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return &ProductList{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	logger.Debug("Fetching product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return product, nil
}

func (s *productService) validateSale(product *model.Product) error {
	if product.IsOnSale {
		if product.SalePrice == nil || *product.SalePrice <= 0 || *product.SalePrice >= product.Price {
			return ErrInvalidSalePrice
		}
	} else {
		product.SalePrice = nil
	}
	return nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
	})

	if _, err := s.categoryRepo.FindByID(product.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found for product", map[string]interface{}{
				"category_id": product.CategoryID,
			})
			return ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category for product", err, map[string]interface{}{
			"category_id": product.CategoryID,
		})
		return err
	}

	if err := s.validateSale(product); err != nil {
		return err
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(id uint, updated *model.Product) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for update", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for update", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	if updated.CategoryID != 0 && updated.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(updated.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = updated.CategoryID
	}

	product.Name = updated.Name
	product.Description = updated.Description
	product.Price = updated.Price
	product.StockQuantity = updated.StockQuantity
	product.ImageURL = updated.ImageURL
	product.IsBestseller = updated.IsBestseller
	product.IsOnSale = updated.IsOnSale
	product.SalePrice = updated.SalePrice

	if err := s.validateSale(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for deletion", map[string]interface{}{
				"product_id": id,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
