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

type PgxRecordRepository struct {
	BaseRepository
	bankRepo portsrepo.BankAccountRepositoryFacade
}

// newPgxRecordRepository creates a new repository for ledger record data.
func newPgxRecordRepository(pool *pgxpool.Pool, bankRepo portsrepo.BankAccountRepositoryFacade) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

const recordColumns = `record_id, amount, kind, category_id, date, payment_method, bank_account_id, receipt_number, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanRecord(row pgx.Row) (*domain.LedgerRecord, error) {
	var m models.LedgerRecord
	err := row.Scan(
		&m.RecordID,
		&m.Amount,
		&m.Kind,
		&m.CategoryID,
		&m.Date,
		&m.PaymentMethod,
		&m.BankAccountID,
		&m.ReceiptNumber,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	record := mapping.ToDomainLedgerRecord(m)
	return &record, nil
}

// FindRecordByID retrieves a ledger record by its ID.
func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.LedgerRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM ledger_records WHERE record_id = $1;`
	record, err := scanRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	return record, nil
}

// ListRecords retrieves ledger records, newest first.
func (r *PgxRecordRepository) ListRecords(ctx context.Context, limit int, offset int) ([]domain.LedgerRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + recordColumns + ` FROM ledger_records ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []domain.LedgerRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}

// IsRecordOwned reports whether any obligation, loan or member prepayment
// still references the record.
func (r *PgxRecordRepository) IsRecordOwned(ctx context.Context, recordID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM installments WHERE record_id = $1)
			OR EXISTS (SELECT 1 FROM repayments WHERE record_id = $1)
			OR EXISTS (SELECT 1 FROM subscriptions WHERE record_id = $1)
			OR EXISTS (SELECT 1 FROM loans WHERE record_id = $1)
			OR EXISTS (SELECT 1 FROM members WHERE prepayment_record_id = $1);
	`
	var owned bool
	if err := r.Pool.QueryRow(ctx, query, recordID).Scan(&owned); err != nil {
		return false, fmt.Errorf("failed to check ownership of record %s: %w", recordID, err)
	}
	return owned, nil
}

// SaveRecord inserts a new record and applies its append deltas in one
// transaction.
func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveRecordInTx(ctx, tx, record); err != nil {
		return err
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, record.CreatedBy, record.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateRecord amends a record in place and applies its amend deltas in one
// transaction.
func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelLedgerRecord(record)
	query := `
		UPDATE ledger_records
		SET amount = $2, payment_method = $3, bank_account_id = $4, receipt_number = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE record_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		m.RecordID,
		m.Amount,
		m.PaymentMethod,
		m.BankAccountID,
		m.ReceiptNumber,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update record "+m.RecordID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, record.LastUpdatedBy, record.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteRecord removes a record and applies its retract deltas in one
// transaction.
func (r *PgxRecordRepository) DeleteRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.DeleteRecordInTx(ctx, tx, record.RecordID); err != nil {
		return err
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, record.LastUpdatedBy, record.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveRecordInTx inserts a record within the given transaction.
func (r *PgxRecordRepository) SaveRecordInTx(ctx context.Context, tx pgx.Tx, record domain.LedgerRecord) error {
	m := mapping.ToModelLedgerRecord(record)
	query := `
		INSERT INTO ledger_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.RecordID,
		m.Amount,
		m.Kind,
		m.CategoryID,
		m.Date,
		m.PaymentMethod,
		m.BankAccountID,
		m.ReceiptNumber,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert record "+m.RecordID, err)
	}
	return nil
}

// DeleteRecordInTx removes a record within the given transaction.
func (r *PgxRecordRepository) DeleteRecordInTx(ctx context.Context, tx pgx.Tx, recordID string) error {
	ct, err := tx.Exec(ctx, `DELETE FROM ledger_records WHERE record_id = $1;`, recordID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete record "+recordID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
