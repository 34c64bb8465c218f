package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger records
type LedgerReaderSvc interface {
	// GetRecordByID retrieves a specific ledger record by its unique identifier.
	GetRecordByID(ctx context.Context, recordID string) (*domain.LedgerRecord, error)

	// ListRecords retrieves a paginated list of ledger records, newest first.
	ListRecords(ctx context.Context, limit int, offset int) ([]domain.LedgerRecord, error)
}

// LedgerWriterSvc defines write operations for ledger records
type LedgerWriterSvc interface {
	// AppendRecord validates and persists a new ledger record, applying the
	// balance effect to the attached bank account in the same transaction.
	AppendRecord(ctx context.Context, req dto.CreateRecordRequest, creatorUserID string) (*domain.LedgerRecord, error)

	// AmendRecord corrects an existing record's amount and/or bank linkage,
	// adjusting the affected account balances by the projected difference.
	AmendRecord(ctx context.Context, recordID string, req dto.AmendRecordRequest, updaterUserID string) (*domain.LedgerRecord, error)

	// RetractRecord deletes a record and reverses its balance effect.
	// Records owned by an obligation or loan cannot be retracted directly.
	RetractRecord(ctx context.Context, recordID string, updaterUserID string) error
}

// LedgerSvcFacade combines all ledger-record service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
