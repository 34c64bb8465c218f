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

type PgxInstallmentRepository struct {
	BaseRepository
	recordRepo portsrepo.RecordTransactionSupport
	bankRepo   portsrepo.BankAccountTransactionSupport
}

// newPgxInstallmentRepository creates a new repository for installment data.
func newPgxInstallmentRepository(pool *pgxpool.Pool, recordRepo portsrepo.RecordTransactionSupport, bankRepo portsrepo.BankAccountTransactionSupport) portsrepo.InstallmentRepositoryFacade {
	return &PgxInstallmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		recordRepo:     recordRepo,
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

const installmentColumns = `installment_id, member_id, sequence_number, amount, due_date, status, paid_at, notes, record_id, created_at, created_by, last_updated_at, last_updated_by`

func scanInstallment(row pgx.Row) (*domain.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID,
		&m.MemberID,
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
	installment := mapping.ToDomainInstallment(m)
	return &installment, nil
}

// FindInstallmentByID retrieves an installment by its ID.
func (r *PgxInstallmentRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE installment_id = $1;`
	installment, err := scanInstallment(r.Pool.QueryRow(ctx, query, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment by ID %s: %w", installmentID, err)
	}
	return installment, nil
}

// ListInstallmentsByMember retrieves a member's installments ordered by sequence.
func (r *PgxInstallmentRepository) ListInstallmentsByMember(ctx context.Context, memberID string) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE member_id = $1 ORDER BY sequence_number;`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for member %s: %w", memberID, err)
	}
	defer rows.Close()

	installments := []domain.Installment{}
	for rows.Next() {
		installment, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, *installment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}
	return installments, nil
}

// CountInstallmentsByStatus counts a member's installments with the given status.
func (r *PgxInstallmentRepository) CountInstallmentsByStatus(ctx context.Context, memberID string, status domain.ObligationStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM installments WHERE member_id = $1 AND status = $2;`
	if err := r.Pool.QueryRow(ctx, query, memberID, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count installments for member %s: %w", memberID, err)
	}
	return count, nil
}

// PayInstallment inserts the fulfilling record, flips the installment to PAID
// and applies the balance deltas, all in one transaction. The status guard on
// UNPAID means a concurrent payer loses with ErrInvalidTransition.
func (r *PgxInstallmentRepository) PayInstallment(ctx context.Context, installment domain.Installment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.recordRepo.SaveRecordInTx(ctx, tx, record); err != nil {
		return err
	}

	m := mapping.ToModelInstallment(installment)
	query := `
		UPDATE installments
		SET amount = $2, status = $3, paid_at = $4, notes = $5, record_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE installment_id = $1 AND status = 'UNPAID';
	`
	ct, err := tx.Exec(ctx, query,
		m.InstallmentID,
		m.Amount,
		m.Status,
		m.PaidAt,
		m.Notes,
		m.RecordID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark installment "+m.InstallmentID+" paid", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %s is not unpaid", apperrors.ErrInvalidTransition, m.InstallmentID)
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, installment.LastUpdatedBy, installment.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// RevokeInstallment flips the installment back to UNPAID, deletes the
// detached record and applies the retract deltas, all in one transaction.
func (r *PgxInstallmentRepository) RevokeInstallment(ctx context.Context, installment domain.Installment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInstallment(installment)
	query := `
		UPDATE installments
		SET status = $2, paid_at = NULL, notes = NULL, record_id = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE installment_id = $1 AND status = 'PAID';
	`
	ct, err := tx.Exec(ctx, query, m.InstallmentID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to revoke installment "+m.InstallmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %s is not paid", apperrors.ErrInvalidTransition, m.InstallmentID)
	}

	if err := r.recordRepo.DeleteRecordInTx(ctx, tx, record.RecordID); err != nil {
		return err
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, installment.LastUpdatedBy, installment.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteInstallment removes the installment and, when it was paid, its owned
// record, applying the retract deltas in the same transaction.
func (r *PgxInstallmentRepository) DeleteInstallment(ctx context.Context, installment domain.Installment, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM installments WHERE installment_id = $1;`, installment.InstallmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete installment "+installment.InstallmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if record != nil {
		if err := r.recordRepo.DeleteRecordInTx(ctx, tx, record.RecordID); err != nil {
			return err
		}
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, installment.LastUpdatedBy, installment.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
