package repositories

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// RecordReader defines read operations for ledger records.
type RecordReader interface {
	// FindRecordByID retrieves a ledger record by its unique identifier.
	FindRecordByID(ctx context.Context, recordID string) (*domain.LedgerRecord, error)

	// ListRecords retrieves ledger records, newest first.
	ListRecords(ctx context.Context, limit int, offset int) ([]domain.LedgerRecord, error)

	// IsRecordOwned reports whether any obligation, loan or member prepayment
	// still references the record. Owned records may only be deleted through
	// their owner.
	IsRecordOwned(ctx context.Context, recordID string) (bool, error)
}

// RecordWriter defines the atomic write operations for ledger records. Every
// method persists the record change and applies the given balance deltas to
// the affected bank accounts within a single database transaction.
type RecordWriter interface {
	// SaveRecord inserts a new record and applies its append deltas.
	SaveRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// UpdateRecord amends a record in place and applies its amend deltas.
	UpdateRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// DeleteRecord removes a record and applies its retract deltas.
	DeleteRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error
}

// RecordTransactionSupport exposes record writes that participate in a
// larger caller-owned transaction (obligation pay/revoke, loan flows).
type RecordTransactionSupport interface {
	// SaveRecordInTx inserts a record within the given transaction.
	SaveRecordInTx(ctx context.Context, tx pgx.Tx, record domain.LedgerRecord) error

	// DeleteRecordInTx removes a record within the given transaction.
	DeleteRecordInTx(ctx context.Context, tx pgx.Tx, recordID string) error
}

// RecordRepositoryFacade combines all ledger record repository interfaces.
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
	RecordTransactionSupport
}
