package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/services"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
	"github.com/lukmanha083/kidkazz-ledger/internal/middleware"
)

// balanceHandler handles HTTP requests for materialized balances and reports.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance and reporting routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/accounts/:id/balances")
	{
		balances.GET("", h.getBalance)
		balances.GET("/ytd", h.getYearToDate)
		balances.POST("/recompute", h.recomputeBalance)
		balances.POST("/carry-forward", h.carryForward)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance/:year/:month", h.trialBalance)
	}
}

func (h *balanceHandler) getBalance(c *gin.Context) {
	var params dto.BalanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	balance, err := h.balanceService.GetAccountBalance(c.Request.Context(), c.Param("id"), params.Year, params.Month)
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *balanceHandler) getYearToDate(c *gin.Context) {
	var params dto.YearToDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	totals, err := h.balanceService.GetYearToDateTotals(c.Request.Context(), c.Param("id"), params.Year, params.UptoMonth)
	if err != nil {
		respondError(c, err, "Failed to aggregate year-to-date totals")
		return
	}
	c.JSON(http.StatusOK, dto.ToYearToDateResponse(totals))
}

func (h *balanceHandler) recomputeBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecomputeBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecomputeBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	balance, err := h.balanceService.RecomputePeriod(c.Request.Context(), c.Param("id"), req.FiscalYear, req.FiscalMonth)
	if err != nil {
		respondError(c, err, "Failed to recompute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *balanceHandler) carryForward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CarryForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CarryForward", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.balanceService.CarryForwardOpeningBalance(c.Request.Context(), c.Param("id"), req.FromYear, req.FromMonth, req.ToYear, req.ToMonth)
	if err != nil {
		respondError(c, err, "Failed to carry forward opening balance")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *balanceHandler) trialBalance(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal month"})
		return
	}

	report, err := h.balanceService.TrialBalance(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}
