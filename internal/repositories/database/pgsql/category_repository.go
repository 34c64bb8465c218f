package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	"github.com/assocfin/afm_backend/internal/models"
	"github.com/assocfin/afm_backend/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for transaction category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, kind, system_related, system_key, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.TransactionCategory, error) {
	var m models.TransactionCategory
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.Kind,
		&m.SystemRelated,
		&m.SystemKey,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.TransactionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM transaction_categories WHERE category_id = $1;`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return category, nil
}

// FindCategoryBySystemKey retrieves one of the seeded system categories.
func (r *PgxCategoryRepository) FindCategoryBySystemKey(ctx context.Context, key domain.SystemCategoryKey) (*domain.TransactionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM transaction_categories WHERE system_key = $1;`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, string(key)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: system category %s", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find category by system key %s: %w", key, err)
	}
	return category, nil
}

// ListCategories retrieves all categories ordered by kind then name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.TransactionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM transaction_categories ORDER BY kind, name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.TransactionCategory{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.TransactionCategory) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO transaction_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Kind,
		m.SystemRelated,
		m.SystemKey,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category %q of kind %s already exists", apperrors.ErrDuplicate, category.Name, category.Kind)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// DeleteCategory removes a category. The restrict FK from ledger_records
// surfaces as ErrIntegrity while any record references it.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM transaction_categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: ledger records still reference category %s", apperrors.ErrIntegrity, categoryID)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
