package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/services"
	"github.com/lukmanha083/kidkazz-ledger/internal/middleware"
	"github.com/lukmanha083/kidkazz-ledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations. Every mutation inside the group must carry an actor
// identity for the audit trail.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerPeriodRoutes(v1, services.Period)
	registerJournalRoutes(v1, services.Posting)
	registerBalanceRoutes(v1, services.Balance)
}
