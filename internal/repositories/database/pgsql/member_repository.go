package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	"github.com/assocfin/afm_backend/internal/utils/mapping"
)

type PgxMemberRepository struct {
	BaseRepository
	recordRepo portsrepo.RecordTransactionSupport
	bankRepo   portsrepo.BankAccountTransactionSupport
}

// newPgxMemberRepository creates a new repository for the financial slice of
// member data. Member CRUD itself lives in the membership service; this
// repository only reads members and attaches their payment plans.
func newPgxMemberRepository(pool *pgxpool.Pool, recordRepo portsrepo.RecordTransactionSupport, bankRepo portsrepo.BankAccountTransactionSupport) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
		recordRepo:     recordRepo,
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

// FindMemberByID retrieves the financial slice of a member record.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `
		SELECT member_id, name, rank, membership_number, subscription_date, is_active, prepayment_record_id
		FROM members WHERE member_id = $1;
	`
	var member domain.Member
	err := r.Pool.QueryRow(ctx, query, memberID).Scan(
		&member.MemberID,
		&member.Name,
		&member.Rank,
		&member.MembershipNumber,
		&member.SubscriptionDate,
		&member.IsActive,
		&member.PrepaymentRecordID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return &member, nil
}

// CreatePaymentPlan atomically inserts the optional prepayment record, links
// it to the member, applies its balance deltas and bulk-inserts the
// installment schedule.
func (r *PgxMemberRepository) CreatePaymentPlan(ctx context.Context, memberID string, record *domain.LedgerRecord, deltas map[string]decimal.Decimal, installments []domain.Installment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var userID string
	var now time.Time
	switch {
	case record != nil:
		userID, now = record.CreatedBy, record.CreatedAt
	case len(installments) > 0:
		userID, now = installments[0].CreatedBy, installments[0].CreatedAt
	}

	if record != nil {
		if err := r.recordRepo.SaveRecordInTx(ctx, tx, *record); err != nil {
			return err
		}
		ct, err := tx.Exec(ctx,
			`UPDATE members SET prepayment_record_id = $2 WHERE member_id = $1 AND prepayment_record_id IS NULL;`,
			memberID, record.RecordID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to link prepayment record to member "+memberID, err)
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("%w: member %s already has a prepayment record", apperrors.ErrDuplicate, memberID)
		}
	}

	if len(installments) > 0 {
		query := `
			INSERT INTO installments (` + installmentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		batch := &pgx.Batch{}
		for _, installment := range installments {
			m := mapping.ToModelInstallment(installment)
			batch.Queue(query,
				m.InstallmentID,
				m.MemberID,
				m.SequenceNumber,
				m.Amount,
				m.DueDate,
				m.Status,
				m.PaidAt,
				m.Notes,
				m.RecordID,
				m.CreatedAt,
				m.CreatedBy,
				m.LastUpdatedAt,
				m.LastUpdatedBy,
			)
		}

		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to insert installment %s: %w", installments[i].InstallmentID, err)
			}
		}
		if closeErr := br.Close(); closeErr != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close installment insert batch: %w", closeErr)
		}
		if batchErr != nil {
			return apperrors.NewAppError(500, "failed to insert installment schedule for member "+memberID, batchErr)
		}
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, userID, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
