package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
)

// CategoryReaderSvc defines read operations for transaction categories
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.TransactionCategory, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]domain.TransactionCategory, error)
}

// CategoryWriterSvc defines write operations for transaction categories
type CategoryWriterSvc interface {
	// CreateCategory persists a new user category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.TransactionCategory, error)

	// DeleteCategory removes a category no record uses. System categories
	// cannot be deleted.
	DeleteCategory(ctx context.Context, categoryID string, updaterUserID string) error
}

// CategorySvcFacade combines all category service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
