package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
)

// respondError maps the typed ledger errors to HTTP statuses. Anything not
// recognized is an internal error and its detail stays out of the response.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrInvalidHierarchy),
		errors.Is(err, apperrors.ErrInvalidAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateCode),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrPeriodNotOpen),
		errors.Is(err, apperrors.ErrPeriodLocked),
		errors.Is(err, apperrors.ErrAlreadyLocked),
		errors.Is(err, apperrors.ErrAlreadyPosted),
		errors.Is(err, apperrors.ErrAlreadyVoided),
		errors.Is(err, apperrors.ErrNotPosted),
		errors.Is(err, apperrors.ErrAccountHasTransactions):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
