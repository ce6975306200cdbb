package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// CategoryService handles category taxonomy operations.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService with the provided repository dependencies.
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// GetCategories retrieves categories, optionally filtered by type.
func (s *CategoryService) GetCategories(categoryType string) ([]model.Category, error) {
	return s.categoryRepo.GetCategories(categoryType)
}

// GetCategory retrieves a category by its ID.
func (s *CategoryService) GetCategory(categoryID string) (model.Category, error) {
	return s.categoryRepo.GetCategoryOnID(categoryID)
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, req request.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:   uuid.New().String(),
		Type: req.Type,
		Name: req.Name,
	}

	if err := s.categoryRepo.InsertCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory applies the provided fields to an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID string, req request.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategoryOnID(categoryID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		category.Type = *req.Type
	}
	if req.Name != nil {
		category.Name = *req.Name
	}

	if err := s.categoryRepo.UpdateCategory(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory removes a category.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}
