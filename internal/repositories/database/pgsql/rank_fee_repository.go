package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
)

type PgxRankFeeRepository struct {
	BaseRepository
}

// newPgxRankFeeRepository creates a new repository for rank fee data.
func newPgxRankFeeRepository(pool *pgxpool.Pool) portsrepo.RankFeeRepositoryFacade {
	return &PgxRankFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RankFeeRepositoryFacade = (*PgxRankFeeRepository)(nil)

const rankFeeColumns = `rank, monthly_fee, created_at, created_by, last_updated_at, last_updated_by`

func scanRankFee(row pgx.Row) (*domain.RankFee, error) {
	var fee domain.RankFee
	err := row.Scan(
		&fee.Rank,
		&fee.MonthlyFee,
		&fee.CreatedAt,
		&fee.CreatedBy,
		&fee.LastUpdatedAt,
		&fee.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// FindRankFee retrieves the fee row for a rank.
func (r *PgxRankFeeRepository) FindRankFee(ctx context.Context, rank domain.Rank) (*domain.RankFee, error) {
	query := `SELECT ` + rankFeeColumns + ` FROM rank_fees WHERE rank = $1;`
	fee, err := scanRankFee(r.Pool.QueryRow(ctx, query, string(rank)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee for rank %s: %w", rank, err)
	}
	return fee, nil
}

// ListRankFees retrieves all fee rows.
func (r *PgxRankFeeRepository) ListRankFees(ctx context.Context) ([]domain.RankFee, error) {
	query := `SELECT ` + rankFeeColumns + ` FROM rank_fees ORDER BY rank;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rank fees: %w", err)
	}
	defer rows.Close()

	fees := []domain.RankFee{}
	for rows.Next() {
		fee, err := scanRankFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rank fee row: %w", err)
		}
		fees = append(fees, *fee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rank fee rows: %w", err)
	}
	return fees, nil
}

// SaveRankFee inserts or updates the fee for a rank.
func (r *PgxRankFeeRepository) SaveRankFee(ctx context.Context, fee domain.RankFee) error {
	query := `
		INSERT INTO rank_fees (rank, monthly_fee, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (rank) DO UPDATE
		SET monthly_fee = EXCLUDED.monthly_fee,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		string(fee.Rank),
		fee.MonthlyFee,
		fee.CreatedAt,
		fee.CreatedBy,
		fee.LastUpdatedAt,
		fee.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fee for rank %s: %w", fee.Rank, err)
	}
	return nil
}
