package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assocfin/afm_backend/internal/core/domain"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// rankFeeHandler handles HTTP requests for the rank fee table.
type rankFeeHandler struct {
	rankFeeService portssvc.RankFeeSvcFacade
}

func newRankFeeHandler(rs portssvc.RankFeeSvcFacade) *rankFeeHandler {
	return &rankFeeHandler{rankFeeService: rs}
}

// registerRankFeeRoutes registers routes for the rank fee API.
func registerRankFeeRoutes(rg *gin.RouterGroup, rankFeeService portssvc.RankFeeSvcFacade) {
	h := newRankFeeHandler(rankFeeService)

	fees := rg.Group("/rank-fees")
	{
		fees.GET("", h.listRankFees)
		fees.GET("/:rank", h.getRankFee)
		fees.PUT("/:rank", h.setRankFee)
	}
}

// listRankFees godoc
// @Summary List monthly fees per rank
// @Tags rank-fees
// @Produce  json
// @Success 200 {array} dto.RankFeeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /rank-fees [get]
func (h *rankFeeHandler) listRankFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fees, err := h.rankFeeService.ListRankFees(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list rank fees")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRankFeeResponse(fees))
}

// getRankFee godoc
// @Summary Get the monthly fee for a rank
// @Tags rank-fees
// @Produce  json
// @Param   rank path string true "Rank"
// @Success 200 {object} dto.RankFeeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No fee configured for rank"
// @Security BearerAuth
// @Router /rank-fees/{rank} [get]
func (h *rankFeeHandler) getRankFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rank := domain.Rank(c.Param("rank"))

	fee, err := h.rankFeeService.GetRankFee(c.Request.Context(), rank)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve rank fee")
		return
	}

	c.JSON(http.StatusOK, dto.ToRankFeeResponse(fee))
}

// setRankFee godoc
// @Summary Set the monthly fee for a rank
// @Description Inserts or updates the fee row for the rank
// @Tags rank-fees
// @Accept  json
// @Produce  json
// @Param   rank path string true "Rank"
// @Param   fee body dto.SetRankFeeRequest true "Monthly fee"
// @Success 200 {object} dto.RankFeeResponse
// @Failure 400 {object} map[string]string "Invalid rank or fee"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /rank-fees/{rank} [put]
func (h *rankFeeHandler) setRankFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rank := domain.Rank(c.Param("rank"))

	var req dto.SetRankFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRankFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fee, err := h.rankFeeService.SetRankFee(c.Request.Context(), rank, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to set rank fee")
		return
	}

	logger.Info("Rank fee updated", slog.String("rank", string(rank)))
	c.JSON(http.StatusOK, dto.ToRankFeeResponse(fee))
}
