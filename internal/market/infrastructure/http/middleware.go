package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/jwt"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

const (
	authHeaderName   = "Authorization"
	userIdContextKey = "user_id"
)

// NewAuthMiddleware resolves the acting user from a bearer token issued by the auth service.
func NewAuthMiddleware(secretKey string, tokenParser jwt.TokenParser, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "missing authorization header"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid auth header"})
			return
		}

		claims, err := tokenParser.ParseToken([]byte(secretKey), parts[1])
		if err != nil {
			logger.Warn("failed to parse user token", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid token"})
			return
		}
		if claims.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid token"})
			return
		}

		c.Set(userIdContextKey, claims.UserID)
		c.Next()
	}
}

// NewAccountMiddleware makes sure the authenticated user owns a balance row before any handler runs.
func NewAccountMiddleware(ensurer domain.AccountEnsurer, startBalance decimal.Decimal, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
			return
		}

		err := ensurer.EnsureAccountCreated(c.Request.Context(), userId, startBalance)
		if err != nil {
			logger.Error("failed to ensure account", "user_id", userId, "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
			return
		}

		c.Next()
	}
}

func userIdFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIdContextKey)
	if !exists {
		return 0, false
	}

	userId, ok := value.(int64)
	return userId, ok
}
