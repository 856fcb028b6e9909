package service

import (
	"errors"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCategoryExists = errors.New("category already exists")

type CategoryService interface {
	GetCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(id uint, updated *model.Category) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	logger.Debug("Fetching categories", nil)

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch categories", err, nil)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"category_id": id,
			})
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(category *model.Category) error {
	logger.Info("Creating category", map[string]interface{}{
		"name": category.Name,
	})

	if _, err := s.categoryRepo.FindByName(category.Name); err == nil {
		logger.Warn("Category already exists", map[string]interface{}{
			"name": category.Name,
		})
		return ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check category existence", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (s *categoryService) UpdateCategory(id uint, updated *model.Category) (*model.Category, error) {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": id,
	})

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category for update", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	category.Name = updated.Name
	category.Description = updated.Description

	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": id,
	})
	return category, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		logger.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
