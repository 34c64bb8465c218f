package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// recordHandler handles HTTP requests for ledger records.
type recordHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newRecordHandler(ls portssvc.LedgerSvcFacade) *recordHandler {
	return &recordHandler{ledgerService: ls}
}

// registerRecordRoutes registers routes for the ledger record API.
func registerRecordRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newRecordHandler(ledgerService)

	records := rg.Group("/records")
	{
		records.POST("", h.appendRecord)
		records.GET("", h.listRecords)
		records.GET("/:id", h.getRecord)
		records.PUT("/:id", h.amendRecord)
		records.DELETE("/:id", h.retractRecord)
	}
}

// appendRecord godoc
// @Summary Append a ledger record
// @Description Appends a new income or expense record to the ledger
// @Tags records
// @Accept  json
// @Produce  json
// @Param   record body dto.CreateRecordRequest true "Record details"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to append record"
// @Security BearerAuth
// @Router /records [post]
func (h *recordHandler) appendRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.ledgerService.AppendRecord(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to append record")
		return
	}

	logger.Info("Record appended", slog.String("record_id", record.RecordID))
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// listRecords godoc
// @Summary List ledger records
// @Description Retrieves ledger records, newest first
// @Tags records
// @Produce  json
// @Param   limit query int false "Page size (default 50)"
// @Param   offset query int false "Offset into the result set"
// @Success 200 {array} dto.RecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list records"
// @Security BearerAuth
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.ledgerService.ListRecords(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list records")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecordResponse(records))
}

// getRecord godoc
// @Summary Get a ledger record by ID
// @Tags records
// @Produce  json
// @Param   id path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Record not found"
// @Security BearerAuth
// @Router /records/{id} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("id")

	record, err := h.ledgerService.GetRecordByID(c.Request.Context(), recordID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve record")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// amendRecord godoc
// @Summary Amend a ledger record
// @Description Updates the amount or payment details of an existing record and
// @Description reprojects the affected bank balances
// @Tags records
// @Accept  json
// @Produce  json
// @Param   id path string true "Record ID"
// @Param   record body dto.AmendRecordRequest true "Fields to amend"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Record not found"
// @Security BearerAuth
// @Router /records/{id} [put]
func (h *recordHandler) amendRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("id")

	var req dto.AmendRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AmendRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.ledgerService.AmendRecord(c.Request.Context(), recordID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to amend record")
		return
	}

	logger.Info("Record amended", slog.String("record_id", record.RecordID))
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// retractRecord godoc
// @Summary Retract a ledger record
// @Description Deletes a standalone record and reverses its balance effect.
// @Description Records owned by an obligation, loan or payment plan are refused.
// @Tags records
// @Produce  json
// @Param   id path string true "Record ID"
// @Success 204 "Record retracted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 409 {object} map[string]string "Record is owned by an obligation"
// @Security BearerAuth
// @Router /records/{id} [delete]
func (h *recordHandler) retractRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.RetractRecord(c.Request.Context(), recordID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to retract record")
		return
	}

	logger.Info("Record retracted", slog.String("record_id", recordID))
	c.Status(http.StatusNoContent)
}
