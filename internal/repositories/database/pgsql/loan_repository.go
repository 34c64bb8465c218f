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

type PgxLoanRepository struct {
	BaseRepository
	recordRepo portsrepo.RecordTransactionSupport
	bankRepo   portsrepo.BankAccountTransactionSupport
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool, recordRepo portsrepo.RecordTransactionSupport, bankRepo portsrepo.BankAccountTransactionSupport) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
		recordRepo:     recordRepo,
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, member_id, amount, issued_date, record_id, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.MemberID,
		&m.Amount,
		&m.IssuedDate,
		&m.RecordID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	loan := mapping.ToDomainLoan(m)
	return &loan, nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}
	return loan, nil
}

// ListLoansByMember retrieves a member's loans, newest first.
func (r *PgxLoanRepository) ListLoansByMember(ctx context.Context, memberID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE member_id = $1 ORDER BY issued_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for member %s: %w", memberID, err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

// SaveLoan atomically inserts the disbursement record, the loan row and the
// repayment schedule, applying the disbursement balance deltas.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, record domain.LedgerRecord, deltas map[string]decimal.Decimal, repayments []domain.Repayment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.recordRepo.SaveRecordInTx(ctx, tx, record); err != nil {
		return err
	}

	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.LoanID,
		m.MemberID,
		m.Amount,
		m.IssuedDate,
		m.RecordID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert loan "+m.LoanID, err)
	}

	if len(repayments) > 0 {
		insertRepayment := `
			INSERT INTO repayments (` + repaymentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		batch := &pgx.Batch{}
		for _, repayment := range repayments {
			rm := mapping.ToModelRepayment(repayment)
			batch.Queue(insertRepayment,
				rm.RepaymentID,
				rm.LoanID,
				rm.SequenceNumber,
				rm.Amount,
				rm.DueDate,
				rm.Status,
				rm.PaidAt,
				rm.Notes,
				rm.RecordID,
				rm.CreatedAt,
				rm.CreatedBy,
				rm.LastUpdatedAt,
				rm.LastUpdatedBy,
			)
		}

		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to insert repayment %s: %w", repayments[i].RepaymentID, err)
			}
		}
		if closeErr := br.Close(); closeErr != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close repayment insert batch: %w", closeErr)
		}
		if batchErr != nil {
			return apperrors.NewAppError(500, "failed to insert repayment schedule for loan "+m.LoanID, batchErr)
		}
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, loan.CreatedBy, loan.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteLoan atomically removes the loan's repayments, every owned ledger
// record named in recordIDs and the loan itself, applying the combined
// retract deltas. Repayments go first so their record FKs are released before
// the records are deleted.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loan domain.Loan, recordIDs []string, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM repayments WHERE loan_id = $1;`, loan.LoanID); err != nil {
		return apperrors.NewAppError(500, "failed to delete repayments for loan "+loan.LoanID, err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loan.LoanID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete loan "+loan.LoanID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if len(recordIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM ledger_records WHERE record_id = ANY($1);`, recordIDs); err != nil {
			return apperrors.NewAppError(500, "failed to delete ledger records for loan "+loan.LoanID, err)
		}
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, loan.LastUpdatedBy, loan.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
