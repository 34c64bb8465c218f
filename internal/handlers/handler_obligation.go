package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// obligationHandler handles HTTP requests for individual installments,
// repayments and subscription rows.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
}

func newObligationHandler(os portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obligationService: os}
}

// registerObligationRoutes registers the installment, repayment and
// subscription routes.
func registerObligationRoutes(rg *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade) {
	h := newObligationHandler(obligationService)

	installments := rg.Group("/installments")
	{
		installments.GET("/:id", h.getInstallment)
		installments.POST("/:id/pay", h.payInstallment)
		installments.POST("/:id/revoke", h.revokeInstallmentPayment)
		installments.DELETE("/:id", h.deleteInstallment)
	}

	repayments := rg.Group("/repayments")
	{
		repayments.GET("/:id", h.getRepayment)
		repayments.POST("/:id/pay", h.payRepayment)
		repayments.POST("/:id/revoke", h.revokeRepaymentPayment)
	}

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.DELETE("/:id", h.revokeSubscription)
	}
}

// getInstallment godoc
// @Summary Get an installment by ID
// @Tags installments
// @Produce  json
// @Param   id path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Installment not found"
// @Security BearerAuth
// @Router /installments/{id} [get]
func (h *obligationHandler) getInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("id")

	installment, err := h.obligationService.GetInstallmentByID(c.Request.Context(), installmentID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve installment")
		return
	}

	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// payInstallment godoc
// @Summary Pay an installment
// @Description Marks the installment paid, creating its ledger record. The
// @Description paid amount may differ from the scheduled amount.
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   id path string true "Installment ID"
// @Param   payment body dto.PayObligationRequest true "Payment details"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 409 {object} map[string]string "Installment is already paid"
// @Security BearerAuth
// @Router /installments/{id}/pay [post]
func (h *obligationHandler) payInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("id")

	var req dto.PayObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayInstallment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	installment, err := h.obligationService.PayInstallment(c.Request.Context(), installmentID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to pay installment")
		return
	}

	logger.Info("Installment paid", slog.String("installment_id", installmentID))
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// revokeInstallmentPayment godoc
// @Summary Revoke an installment payment
// @Description Flips the installment back to unpaid and deletes its ledger
// @Description record, reversing the balance effect
// @Tags installments
// @Produce  json
// @Param   id path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 409 {object} map[string]string "Installment is not paid"
// @Security BearerAuth
// @Router /installments/{id}/revoke [post]
func (h *obligationHandler) revokeInstallmentPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	installment, err := h.obligationService.RevokeInstallmentPayment(c.Request.Context(), installmentID, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to revoke installment payment")
		return
	}

	logger.Info("Installment payment revoked", slog.String("installment_id", installmentID))
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// deleteInstallment godoc
// @Summary Delete an installment
// @Description Removes the installment and, when paid, its owned ledger record
// @Tags installments
// @Produce  json
// @Param   id path string true "Installment ID"
// @Success 204 "Installment deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Installment not found"
// @Security BearerAuth
// @Router /installments/{id} [delete]
func (h *obligationHandler) deleteInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.obligationService.DeleteInstallment(c.Request.Context(), installmentID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to delete installment")
		return
	}

	logger.Info("Installment deleted", slog.String("installment_id", installmentID))
	c.Status(http.StatusNoContent)
}

// getRepayment godoc
// @Summary Get a repayment by ID
// @Tags repayments
// @Produce  json
// @Param   id path string true "Repayment ID"
// @Success 200 {object} dto.RepaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Repayment not found"
// @Security BearerAuth
// @Router /repayments/{id} [get]
func (h *obligationHandler) getRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	repaymentID := c.Param("id")

	repayment, err := h.obligationService.GetRepaymentByID(c.Request.Context(), repaymentID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve repayment")
		return
	}

	c.JSON(http.StatusOK, dto.ToRepaymentResponse(repayment))
}

// payRepayment godoc
// @Summary Pay a loan repayment
// @Description Marks the repayment paid, creating its ledger record
// @Tags repayments
// @Accept  json
// @Produce  json
// @Param   id path string true "Repayment ID"
// @Param   payment body dto.PayObligationRequest true "Payment details"
// @Success 200 {object} dto.RepaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Repayment not found"
// @Failure 409 {object} map[string]string "Repayment is already paid"
// @Security BearerAuth
// @Router /repayments/{id}/pay [post]
func (h *obligationHandler) payRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	repaymentID := c.Param("id")

	var req dto.PayObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayRepayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	repayment, err := h.obligationService.PayRepayment(c.Request.Context(), repaymentID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to pay repayment")
		return
	}

	logger.Info("Repayment paid", slog.String("repayment_id", repaymentID))
	c.JSON(http.StatusOK, dto.ToRepaymentResponse(repayment))
}

// revokeRepaymentPayment godoc
// @Summary Revoke a repayment payment
// @Description Flips the repayment back to unpaid and deletes its ledger
// @Description record, reversing the balance effect
// @Tags repayments
// @Produce  json
// @Param   id path string true "Repayment ID"
// @Success 200 {object} dto.RepaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Repayment not found"
// @Failure 409 {object} map[string]string "Repayment is not paid"
// @Security BearerAuth
// @Router /repayments/{id}/revoke [post]
func (h *obligationHandler) revokeRepaymentPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	repaymentID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	repayment, err := h.obligationService.RevokeRepaymentPayment(c.Request.Context(), repaymentID, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to revoke repayment payment")
		return
	}

	logger.Info("Repayment payment revoked", slog.String("repayment_id", repaymentID))
	c.JSON(http.StatusOK, dto.ToRepaymentResponse(repayment))
}

// revokeSubscription godoc
// @Summary Revoke a subscription payment
// @Description Deletes the month row and its ledger record. A subscription
// @Description row only exists while paid, so revoke and delete coincide.
// @Tags subscriptions
// @Produce  json
// @Param   id path string true "Subscription ID"
// @Success 204 "Subscription revoked"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [delete]
func (h *obligationHandler) revokeSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.obligationService.RevokeSubscription(c.Request.Context(), subscriptionID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to revoke subscription")
		return
	}

	logger.Info("Subscription revoked", slog.String("subscription_id", subscriptionID))
	c.Status(http.StatusNoContent)
}
