package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	"github.com/assocfin/afm_backend/internal/models"
	"github.com/assocfin/afm_backend/internal/utils/mapping"
)

type PgxRepaymentRepository struct {
	BaseRepository
	recordRepo portsrepo.RecordTransactionSupport
	bankRepo   portsrepo.BankAccountTransactionSupport
}

// newPgxRepaymentRepository creates a new repository for loan repayment data.
func newPgxRepaymentRepository(pool *pgxpool.Pool, recordRepo portsrepo.RecordTransactionSupport, bankRepo portsrepo.BankAccountTransactionSupport) portsrepo.RepaymentRepositoryFacade {
	return &PgxRepaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		recordRepo:     recordRepo,
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.RepaymentRepositoryFacade = (*PgxRepaymentRepository)(nil)

const repaymentColumns = `repayment_id, loan_id, sequence_number, amount, due_date, status, paid_at, notes, record_id, created_at, created_by, last_updated_at, last_updated_by`

func scanRepayment(row pgx.Row) (*domain.Repayment, error) {
	var m models.Repayment
	err := row.Scan(
		&m.RepaymentID,
		&m.LoanID,
		&m.SequenceNumber,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.PaidAt,
		&m.Notes,
		&m.RecordID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	repayment := mapping.ToDomainRepayment(m)
	return &repayment, nil
}

// FindRepaymentByID retrieves a repayment by its ID.
func (r *PgxRepaymentRepository) FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	query := `SELECT ` + repaymentColumns + ` FROM repayments WHERE repayment_id = $1;`
	repayment, err := scanRepayment(r.Pool.QueryRow(ctx, query, repaymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find repayment by ID %s: %w", repaymentID, err)
	}
	return repayment, nil
}

// ListRepaymentsByLoan retrieves a loan's repayments ordered by sequence.
func (r *PgxRepaymentRepository) ListRepaymentsByLoan(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	query := `SELECT ` + repaymentColumns + ` FROM repayments WHERE loan_id = $1 ORDER BY sequence_number;`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query repayments for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	repayments := []domain.Repayment{}
	for rows.Next() {
		repayment, err := scanRepayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repayment row: %w", err)
		}
		repayments = append(repayments, *repayment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repayment rows: %w", err)
	}
	return repayments, nil
}

// CountRepaymentsByLoan returns the paid and unpaid repayment counts for a loan.
func (r *PgxRepaymentRepository) CountRepaymentsByLoan(ctx context.Context, loanID string) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PAID'),
			COUNT(*) FILTER (WHERE status = 'UNPAID')
		FROM repayments WHERE loan_id = $1;
	`
	var paid, unpaid int
	if err := r.Pool.QueryRow(ctx, query, loanID).Scan(&paid, &unpaid); err != nil {
		return 0, 0, fmt.Errorf("failed to count repayments for loan %s: %w", loanID, err)
	}
	return paid, unpaid, nil
}

// CountUnpaidRepaymentsByMember counts UNPAID repayments across all of a member's loans.
func (r *PgxRepaymentRepository) CountUnpaidRepaymentsByMember(ctx context.Context, memberID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM repayments rp
		JOIN loans l ON l.loan_id = rp.loan_id
		WHERE l.member_id = $1 AND rp.status = 'UNPAID';
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, memberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unpaid repayments for member %s: %w", memberID, err)
	}
	return count, nil
}

// PayRepayment inserts the fulfilling record, flips the repayment to PAID and
// applies the balance deltas, all in one transaction. The status guard on
// UNPAID means a concurrent payer loses with ErrInvalidTransition.
func (r *PgxRepaymentRepository) PayRepayment(ctx context.Context, repayment domain.Repayment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.recordRepo.SaveRecordInTx(ctx, tx, record); err != nil {
		return err
	}

	m := mapping.ToModelRepayment(repayment)
	query := `
		UPDATE repayments
		SET amount = $2, status = $3, paid_at = $4, notes = $5, record_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE repayment_id = $1 AND status = 'UNPAID';
	`
	ct, err := tx.Exec(ctx, query,
		m.RepaymentID,
		m.Amount,
		m.Status,
		m.PaidAt,
		m.Notes,
		m.RecordID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark repayment "+m.RepaymentID+" paid", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: repayment %s is not unpaid", apperrors.ErrInvalidTransition, m.RepaymentID)
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, repayment.LastUpdatedBy, repayment.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// RevokeRepayment flips the repayment back to UNPAID, deletes the detached
// record and applies the retract deltas, all in one transaction.
func (r *PgxRepaymentRepository) RevokeRepayment(ctx context.Context, repayment domain.Repayment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRepayment(repayment)
	query := `
		UPDATE repayments
		SET status = $2, paid_at = NULL, notes = NULL, record_id = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE repayment_id = $1 AND status = 'PAID';
	`
	ct, err := tx.Exec(ctx, query, m.RepaymentID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to revoke repayment "+m.RepaymentID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: repayment %s is not paid", apperrors.ErrInvalidTransition, m.RepaymentID)
	}

	if err := r.recordRepo.DeleteRecordInTx(ctx, tx, record.RecordID); err != nil {
		return err
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, repayment.LastUpdatedBy, repayment.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteRepayment removes the repayment and, when it was paid, its owned
// record, applying the retract deltas in the same transaction.
func (r *PgxRepaymentRepository) DeleteRepayment(ctx context.Context, repayment domain.Repayment, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM repayments WHERE repayment_id = $1;`, repayment.RepaymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete repayment "+repayment.RepaymentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if record != nil {
		if err := r.recordRepo.DeleteRecordInTx(ctx, tx, record.RecordID); err != nil {
			return err
		}
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, repayment.LastUpdatedBy, repayment.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
