package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
	"github.com/assocfin/afm_backend/internal/utils/ledgerops"
)

// ledgerService provides the core append/amend/retract operations on the
// ledger. Balance projection deltas are computed here and applied by the
// repository inside the same transaction as the record write.
type ledgerService struct {
	recordRepo   portsrepo.RecordRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	bankRepo     portsrepo.BankAccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(recordRepo portsrepo.RecordRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, bankRepo portsrepo.BankAccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
		bankRepo:     bankRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetRecordByID(ctx context.Context, recordID string) (*domain.LedgerRecord, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find record by ID", slog.String("error", err.Error()), slog.String("record_id", recordID))
		}
		return nil, err
	}
	return record, nil
}

func (s *ledgerService) ListRecords(ctx context.Context, limit int, offset int) ([]domain.LedgerRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.recordRepo.ListRecords(ctx, limit, offset)
}

// AppendRecord validates and persists a new ledger record. The record kind is
// taken from the category, never from the request.
func (s *ledgerService) AppendRecord(ctx context.Context, req dto.CreateRecordRequest, creatorUserID string) (*domain.LedgerRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("category", "category not found")
		}
		logger.Error("Failed to fetch category for record", slog.String("error", err.Error()), slog.String("category_id", req.CategoryID))
		return nil, err
	}

	if req.BankAccountID != nil {
		if _, err := s.bankRepo.FindBankAccountByID(ctx, *req.BankAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewFieldError("bank_account", "bank account not found")
			}
			logger.Error("Failed to fetch bank account for record", slog.String("error", err.Error()), slog.String("account_id", *req.BankAccountID))
			return nil, err
		}
	}

	now := time.Now()
	record := domain.LedgerRecord{
		RecordID:      uuid.NewString(),
		Amount:        req.Amount,
		Kind:          category.Kind,
		CategoryID:    category.CategoryID,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		BankAccountID: req.BankAccountID,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	deltas := ledgerops.AppendDelta(record)
	if err := s.recordRepo.SaveRecord(ctx, record, deltas); err != nil {
		logger.Error("Failed to save record", slog.String("error", err.Error()), slog.String("record_id", record.RecordID))
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	logger.Info("Record appended", slog.String("record_id", record.RecordID), slog.String("kind", string(record.Kind)))
	return &record, nil
}

// AmendRecord corrects a record in place. Only the provided fields change;
// switching the payment method to CASH detaches the bank fields unless the
// request sets them explicitly, in which case validation rejects the mix.
func (s *ledgerService) AmendRecord(ctx context.Context, recordID string, req dto.AmendRecordRequest, updaterUserID string) (*domain.LedgerRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	oldRec, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	newRec := *oldRec
	if req.Amount != nil {
		newRec.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		newRec.PaymentMethod = *req.PaymentMethod
		if newRec.PaymentMethod.IsCash() {
			newRec.BankAccountID = nil
			newRec.ReceiptNumber = nil
		}
	}
	if req.BankAccountID != nil {
		newRec.BankAccountID = req.BankAccountID
	}
	if req.ReceiptNumber != nil {
		newRec.ReceiptNumber = req.ReceiptNumber
	}
	if err := newRec.Validate(); err != nil {
		return nil, err
	}

	accountChanged := req.BankAccountID != nil && (oldRec.BankAccountID == nil || *oldRec.BankAccountID != *req.BankAccountID)
	if accountChanged {
		if _, err := s.bankRepo.FindBankAccountByID(ctx, *req.BankAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewFieldError("bank_account", "bank account not found")
			}
			return nil, err
		}
	}

	now := time.Now()
	newRec.LastUpdatedAt = now
	newRec.LastUpdatedBy = updaterUserID

	deltas := ledgerops.AmendDeltas(*oldRec, newRec)
	if err := s.recordRepo.UpdateRecord(ctx, newRec, deltas); err != nil {
		logger.Error("Failed to amend record", slog.String("error", err.Error()), slog.String("record_id", recordID))
		return nil, fmt.Errorf("failed to amend record: %w", err)
	}

	logger.Info("Record amended", slog.String("record_id", recordID))
	return &newRec, nil
}

// RetractRecord deletes a free record and reverses its balance effect.
// Records owned by an obligation, loan or payment plan must be removed through
// their owner so the linkage never dangles.
func (s *ledgerService) RetractRecord(ctx context.Context, recordID string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return err
	}

	owned, err := s.recordRepo.IsRecordOwned(ctx, recordID)
	if err != nil {
		logger.Error("Failed to check record ownership", slog.String("error", err.Error()), slog.String("record_id", recordID))
		return err
	}
	if owned {
		return fmt.Errorf("%w: record belongs to an obligation, loan or payment plan", apperrors.ErrIntegrity)
	}

	deltas := ledgerops.RetractDelta(*record)
	if err := s.recordRepo.DeleteRecord(ctx, *record, deltas); err != nil {
		logger.Error("Failed to retract record", slog.String("error", err.Error()), slog.String("record_id", recordID))
		return fmt.Errorf("failed to retract record: %w", err)
	}

	logger.Info("Record retracted", slog.String("record_id", recordID), slog.String("user_id", updaterUserID))
	return nil
}
