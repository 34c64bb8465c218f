package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	"github.com/assocfin/afm_backend/internal/models"
	"github.com/assocfin/afm_backend/internal/utils/mapping"
)

type PgxSubscriptionRepository struct {
	BaseRepository
	recordRepo portsrepo.RecordTransactionSupport
	bankRepo   portsrepo.BankAccountTransactionSupport
}

// newPgxSubscriptionRepository creates a new repository for subscription data.
func newPgxSubscriptionRepository(pool *pgxpool.Pool, recordRepo portsrepo.RecordTransactionSupport, bankRepo portsrepo.BankAccountTransactionSupport) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		recordRepo:     recordRepo,
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, member_id, month, amount, status, paid_at, notes, record_id, created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.MemberID,
		&m.Month,
		&m.Amount,
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
	subscription := mapping.ToDomainSubscription(m)
	return &subscription, nil
}

// FindSubscriptionByID retrieves a subscription by its ID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`
	subscription, err := scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by ID %s: %w", subscriptionID, err)
	}
	return subscription, nil
}

// ListSubscriptionsByMember retrieves a member's subscriptions ordered by month.
func (r *PgxSubscriptionRepository) ListSubscriptionsByMember(ctx context.Context, memberID string) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE member_id = $1 ORDER BY month;`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions for member %s: %w", memberID, err)
	}
	defer rows.Close()

	subscriptions := []domain.Subscription{}
	for rows.Next() {
		subscription, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subscriptions = append(subscriptions, *subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}
	return subscriptions, nil
}

// CountSubscriptionsByMember counts a member's subscription rows. A row only
// exists for a paid month, so the count is the paid-month count.
func (r *PgxSubscriptionRepository) CountSubscriptionsByMember(ctx context.Context, memberID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM subscriptions WHERE member_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, memberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscriptions for member %s: %w", memberID, err)
	}
	return count, nil
}

// SaveSubscription inserts the month row with its fulfilling record and
// balance deltas in one transaction. The unique (member_id, month) index
// turns a second payment for the same month into ErrDuplicate.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.recordRepo.SaveRecordInTx(ctx, tx, record); err != nil {
		return err
	}

	m := mapping.ToModelSubscription(subscription)
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.SubscriptionID,
		m.MemberID,
		m.Month,
		m.Amount,
		m.Status,
		m.PaidAt,
		m.Notes,
		m.RecordID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: subscription for member %s in %s already exists", apperrors.ErrDuplicate, m.MemberID, m.Month.Format("2006-01"))
		}
		return apperrors.NewAppError(500, "failed to insert subscription "+m.SubscriptionID, err)
	}

	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, subscription.LastUpdatedBy, subscription.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteSubscription removes the month row and, if present, its owned record,
// applying the retract deltas in the same transaction.
func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscription domain.Subscription, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE subscription_id = $1;`, subscription.SubscriptionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete subscription "+subscription.SubscriptionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if record != nil {
		if err := r.recordRepo.DeleteRecordInTx(ctx, tx, record.RecordID); err != nil {
			return err
		}
	}
	if err := lockAndApplyDeltas(ctx, tx, r.bankRepo, deltas, subscription.LastUpdatedBy, subscription.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
