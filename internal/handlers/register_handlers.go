package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/middleware"
	"github.com/assocfin/afm_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting service facades.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	// Health check stays public and unthrottled
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, rateLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1",
		middleware.RateLimit(rateLimiter),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	registerRecordRoutes(v1, services.Ledger)
	registerBankAccountRoutes(v1, services.BankAccount)
	registerCategoryRoutes(v1, services.Category)
	registerRankFeeRoutes(v1, services.RankFee)
	registerMemberRoutes(v1, services.Membership, services.Obligation, services.Loan, services.Dues)
	registerObligationRoutes(v1, services.Obligation)
	registerLoanRoutes(v1, services.Loan, services.Obligation)
}
