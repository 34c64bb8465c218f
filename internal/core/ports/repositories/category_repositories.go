package repositories

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
)

// CategoryRepositoryFacade persists transaction categories.
type CategoryRepositoryFacade interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.TransactionCategory, error)

	// FindCategoryBySystemKey retrieves one of the seeded system categories.
	FindCategoryBySystemKey(ctx context.Context, key domain.SystemCategoryKey) (*domain.TransactionCategory, error)

	// ListCategories retrieves all categories ordered by kind then name.
	ListCategories(ctx context.Context) ([]domain.TransactionCategory, error)

	// SaveCategory persists a new category. A duplicate (name, kind) pair
	// fails with ErrDuplicate.
	SaveCategory(ctx context.Context, category domain.TransactionCategory) error

	// DeleteCategory removes a category. Fails with ErrIntegrity while ledger
	// records still reference it.
	DeleteCategory(ctx context.Context, categoryID string) error
}
