package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// memberHandler exposes the financial views attached to a member: dues,
// payment plans, installment schedules, subscriptions and loans.
type memberHandler struct {
	membershipService portssvc.MembershipSvcFacade
	obligationService portssvc.ObligationSvcFacade
	loanService       portssvc.LoanSvcFacade
	duesService       portssvc.DuesSvcFacade
}

func newMemberHandler(
	ms portssvc.MembershipSvcFacade,
	os portssvc.ObligationSvcFacade,
	ls portssvc.LoanSvcFacade,
	ds portssvc.DuesSvcFacade,
) *memberHandler {
	return &memberHandler{
		membershipService: ms,
		obligationService: os,
		loanService:       ls,
		duesService:       ds,
	}
}

// registerMemberRoutes registers the member-scoped financial routes.
func registerMemberRoutes(
	rg *gin.RouterGroup,
	membershipService portssvc.MembershipSvcFacade,
	obligationService portssvc.ObligationSvcFacade,
	loanService portssvc.LoanSvcFacade,
	duesService portssvc.DuesSvcFacade,
) {
	h := newMemberHandler(membershipService, obligationService, loanService, duesService)

	members := rg.Group("/members/:id")
	{
		members.GET("/dues", h.getMemberDues)
		members.POST("/payment-plan", h.createPaymentPlan)
		members.GET("/installments", h.listInstallments)
		members.GET("/subscriptions", h.listSubscriptions)
		members.POST("/subscriptions", h.recordSubscription)
		members.GET("/loans", h.listLoans)
	}
}

// getMemberDues godoc
// @Summary Get a member's dues summary
// @Description Computes unpaid subscription months, installments and repayments
// @Description for the member as of the given date (defaults to today)
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Param   asOf query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.DuesResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /members/{id}/dues [get]
func (h *memberHandler) getMemberDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	asOf := time.Now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			logger.Warn("Invalid asOf date", slog.String("asOf", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	summary, err := h.duesService.GetMemberDues(c.Request.Context(), memberID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute member dues")
		return
	}

	c.JSON(http.StatusOK, dto.ToDuesResponse(summary))
}

// createPaymentPlan godoc
// @Summary Create a membership payment plan
// @Description Splits the subscription fee into an optional prepayment and an
// @Description even installment schedule. A member can only have one plan.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   id path string true "Member ID"
// @Param   plan body dto.CreatePaymentPlanRequest true "Plan details"
// @Success 201 {object} dto.PaymentPlanResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Member already has a payment plan"
// @Security BearerAuth
// @Router /members/{id}/payment-plan [post]
func (h *memberHandler) createPaymentPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePaymentPlan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.MemberID = c.Param("id")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plan, err := h.membershipService.CreatePaymentPlan(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create payment plan")
		return
	}

	logger.Info("Payment plan created", slog.String("member_id", req.MemberID), slog.Int("installments", len(plan.Installments)))
	c.JSON(http.StatusCreated, plan)
}

// listInstallments godoc
// @Summary List a member's installments
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /members/{id}/installments [get]
func (h *memberHandler) listInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	installments, err := h.obligationService.ListInstallmentsByMember(c.Request.Context(), memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list installments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInstallmentResponse(installments))
}

// listSubscriptions godoc
// @Summary List a member's paid subscription months
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /members/{id}/subscriptions [get]
func (h *memberHandler) listSubscriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	subscriptions, err := h.obligationService.ListSubscriptionsByMember(c.Request.Context(), memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSubscriptionResponse(subscriptions))
}

// recordSubscription godoc
// @Summary Record a monthly subscription payment
// @Description Materializes the month row and its ledger record. Paying the
// @Description same month twice fails with a conflict.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   id path string true "Member ID"
// @Param   subscription body dto.RecordSubscriptionRequest true "Payment details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Month already paid"
// @Security BearerAuth
// @Router /members/{id}/subscriptions [post]
func (h *memberHandler) recordSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.MemberID = c.Param("id")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	subscription, err := h.obligationService.RecordSubscription(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record subscription")
		return
	}

	logger.Info("Subscription recorded",
		slog.String("member_id", req.MemberID),
		slog.String("month", subscription.Month.Format("2006-01")))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(subscription))
}

// listLoans godoc
// @Summary List a member's loans
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {array} dto.LoanResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /members/{id}/loans [get]
func (h *memberHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	loans, err := h.loanService.ListLoansByMember(c.Request.Context(), memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}
