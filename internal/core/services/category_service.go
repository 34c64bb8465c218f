package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// categoryService manages bookkeeper-entered transaction categories. System
// categories are seeded by migration and are read-only here.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.TransactionCategory, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.TransactionCategory, error) {
	return s.categoryRepo.ListCategories(ctx)
}

// CreateCategory persists a new user category. (name, kind) pairs are unique;
// a duplicate fails with ErrDuplicate.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.TransactionCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.TransactionCategory{
		CategoryID:    uuid.NewString(),
		Name:          req.Name,
		Kind:          req.Kind,
		SystemRelated: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// DeleteCategory removes a user category. System categories are untouchable,
// and the repository refuses with ErrIntegrity while records reference it.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.SystemRelated {
		return fmt.Errorf("%w: system categories cannot be deleted", apperrors.ErrIntegrity)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Warn("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID), slog.String("user_id", updaterUserID))
	return nil
}
