package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// loanHandler handles HTTP requests for loans.
type loanHandler struct {
	loanService       portssvc.LoanSvcFacade
	obligationService portssvc.ObligationSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade, os portssvc.ObligationSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls, obligationService: os}
}

// registerLoanRoutes registers routes for the loan API.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, obligationService portssvc.ObligationSvcFacade) {
	h := newLoanHandler(loanService, obligationService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.issueLoan)
		loans.GET("/:id", h.getLoan)
		loans.GET("/:id/status", h.getLoanStatus)
		loans.GET("/:id/repayments", h.listRepayments)
		loans.DELETE("/:id", h.deleteLoan)
	}
}

// issueLoan godoc
// @Summary Issue a loan
// @Description Creates the loan, its disbursement expense record and an even
// @Description repayment schedule in one atomic operation
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) issueLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.IssueLoan(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to issue loan")
		return
	}

	logger.Info("Loan issued", slog.String("loan_id", loan.LoanID), slog.String("member_id", loan.MemberID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan with its repayment schedule
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {object} dto.LoanDetailResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve loan")
		return
	}

	repayments, err := h.obligationService.ListRepaymentsByLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve loan repayments")
		return
	}

	c.JSON(http.StatusOK, dto.LoanDetailResponse{
		LoanResponse: dto.ToLoanResponse(loan),
		Repayments:   dto.ToListRepaymentResponse(repayments),
	})
}

// getLoanStatus godoc
// @Summary Get repayment progress for a loan
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {object} dto.LoanStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id}/status [get]
func (h *loanHandler) getLoanStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	status, err := h.loanService.GetLoanStatus(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve loan status")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanStatusResponse(status))
}

// listRepayments godoc
// @Summary List a loan's repayments
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {array} dto.RepaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /loans/{id}/repayments [get]
func (h *loanHandler) listRepayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	repayments, err := h.obligationService.ListRepaymentsByLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list repayments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRepaymentResponse(repayments))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes the loan, its repayments and every owned ledger record,
// @Description reversing all balance effects
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 204 "Loan deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), loanID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to delete loan")
		return
	}

	logger.Info("Loan deleted", slog.String("loan_id", loanID))
	c.Status(http.StatusNoContent)
}
