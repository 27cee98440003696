package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

const retryAfterSeconds = "1"

func handleDomainError(c *gin.Context, err error, logger logging.Logger) {
	switch {
	case errors.Is(err, &domain.NotFoundError{}):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.ForbiddenError{}):
		c.JSON(http.StatusForbidden, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.InvalidArgumentsError{}),
		errors.Is(err, &domain.InvalidStateError{}),
		errors.Is(err, &domain.InsufficientFundsError{}),
		errors.Is(err, &domain.SelfPurchaseForbiddenError{}),
		errors.Is(err, &domain.InvalidPriceError{}):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.BusyError{}):
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"errors": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
