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

// periodHandler handles HTTP requests for the fiscal period register.
type periodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
}

func newPeriodHandler(ps portssvc.FiscalPeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("/:year", h.listPeriods)
		periods.GET("/:year/:month", h.getPeriod)
		periods.POST("/:year/:month/open", h.openPeriod)
		periods.POST("/:year/:month/close", h.closePeriod)
		periods.POST("/:year/:month/reopen", h.reopenPeriod)
		periods.POST("/:year/:month/lock", h.lockPeriod)
	}
}

func periodParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal month"})
		return 0, 0, false
	}
	return year, month, true
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal year"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to list fiscal periods")
		return
	}

	responses := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, gin.H{"periods": responses})
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err, "Failed to retrieve fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) openPeriod(c *gin.Context) {
	year, month, ok := periodParams(c)
	if !ok {
		return
	}
	actorID, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.OpenPeriod(c.Request.Context(), year, month, actorID)
	if err != nil {
		respondError(c, err, "Failed to open fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	year, month, ok := periodParams(c)
	if !ok {
		return
	}
	actorID, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), year, month, actorID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), year, month, actorID, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to reopen fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	year, month, ok := periodParams(c)
	if !ok {
		return
	}
	actorID, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), year, month, actorID)
	if err != nil {
		respondError(c, err, "Failed to lock fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
