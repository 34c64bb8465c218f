package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
	"github.com/assocfin/afm_backend/internal/utils/ledgerops"
	"github.com/assocfin/afm_backend/internal/utils/scheduling"
)

// loanService issues loans and tears them down. Issuing writes the
// disbursement expense record, the loan and the repayment schedule in one
// transaction; deleting reverses every owned record the same way.
type loanService struct {
	loanRepo      portsrepo.LoanRepositoryFacade
	repaymentRepo portsrepo.RepaymentRepositoryFacade
	recordRepo    portsrepo.RecordRepositoryFacade
	categoryRepo  portsrepo.CategoryRepositoryFacade
	memberRepo    portsrepo.MemberRepositoryFacade
}

// NewLoanService creates a new loan service.
func NewLoanService(
	loanRepo portsrepo.LoanRepositoryFacade,
	repaymentRepo portsrepo.RepaymentRepositoryFacade,
	recordRepo portsrepo.RecordRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	memberRepo portsrepo.MemberRepositoryFacade,
) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		recordRepo:    recordRepo,
		categoryRepo:  categoryRepo,
		memberRepo:    memberRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

func (s *loanService) ListLoansByMember(ctx context.Context, memberID string) ([]domain.Loan, error) {
	return s.loanRepo.ListLoansByMember(ctx, memberID)
}

// GetLoanStatus summarizes repayment progress. A loan is completed when no
// repayment remains unpaid.
func (s *loanService) GetLoanStatus(ctx context.Context, loanID string) (*domain.LoanStatus, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	paid, unpaid, err := s.repaymentRepo.CountRepaymentsByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return &domain.LoanStatus{
		LoanID:      loanID,
		Paid:        paid,
		Unpaid:      unpaid,
		Total:       paid + unpaid,
		IsCompleted: unpaid == 0,
	}, nil
}

// IssueLoan creates the loan, its disbursement expense record and the even
// repayment schedule in one transaction.
func (s *loanService) IssueLoan(ctx context.Context, req dto.CreateLoanRequest, creatorUserID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.memberRepo.FindMemberByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	items, err := scheduling.BuildSchedule(req.Amount, req.RepaymentsCount, req.PaymentStartDate)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindCategoryBySystemKey(ctx, domain.CategoryLoanDisbursement)
	if err != nil {
		logger.Error("Failed to fetch disbursement category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch system category %s: %w", domain.CategoryLoanDisbursement, err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	record := domain.LedgerRecord{
		RecordID:      uuid.NewString(),
		Amount:        req.Amount,
		Kind:          category.Kind,
		CategoryID:    category.CategoryID,
		Date:          req.IssuedDate,
		PaymentMethod: req.PaymentMethod,
		BankAccountID: req.BankAccountID,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
		AuditFields:   audit,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	loan := domain.Loan{
		LoanID:      uuid.NewString(),
		MemberID:    req.MemberID,
		Amount:      req.Amount,
		IssuedDate:  req.IssuedDate,
		RecordID:    record.RecordID,
		AuditFields: audit,
	}

	repayments := make([]domain.Repayment, len(items))
	for i, item := range items {
		repayments[i] = domain.Repayment{
			RepaymentID:    uuid.NewString(),
			LoanID:         loan.LoanID,
			SequenceNumber: item.SequenceNumber,
			Amount:         item.Amount,
			DueDate:        item.DueDate,
			Status:         domain.Unpaid,
			AuditFields:    audit,
		}
	}

	deltas := ledgerops.AppendDelta(record)
	if err := s.loanRepo.SaveLoan(ctx, loan, record, deltas, repayments); err != nil {
		logger.Error("Failed to save loan", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	logger.Info("Loan issued", slog.String("loan_id", loan.LoanID), slog.String("member_id", req.MemberID), slog.Int("repayments", len(repayments)))
	return &loan, nil
}

// DeleteLoan removes the loan, its repayments and every owned record,
// reversing all balance effects in one transaction. Repayment records go
// first, then the disbursement, then the loan.
func (s *loanService) DeleteLoan(ctx context.Context, loanID string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return err
	}

	repayments, err := s.repaymentRepo.ListRepaymentsByLoan(ctx, loanID)
	if err != nil {
		return err
	}

	deltas := map[string]decimal.Decimal{}
	var recordIDs []string
	for _, repayment := range repayments {
		if repayment.RecordID == nil {
			continue
		}
		record, err := s.recordRepo.FindRecordByID(ctx, *repayment.RecordID)
		if err != nil {
			return err
		}
		recordIDs = append(recordIDs, record.RecordID)
		mergeDeltas(deltas, ledgerops.RetractDelta(*record))
	}

	disbursement, err := s.recordRepo.FindRecordByID(ctx, loan.RecordID)
	if err != nil {
		return err
	}
	recordIDs = append(recordIDs, disbursement.RecordID)
	mergeDeltas(deltas, ledgerops.RetractDelta(*disbursement))

	if err := s.loanRepo.DeleteLoan(ctx, *loan, recordIDs, deltas); err != nil {
		logger.Error("Failed to delete loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	logger.Info("Loan deleted", slog.String("loan_id", loanID), slog.String("user_id", updaterUserID))
	return nil
}

func mergeDeltas(into map[string]decimal.Decimal, from map[string]decimal.Decimal) {
	for accountID, delta := range from {
		if cur, ok := into[accountID]; ok {
			into[accountID] = cur.Add(delta)
			continue
		}
		into[accountID] = delta
	}
}
