package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nmswainston/dwellpath-backend/utils"
)

// OwnerMiddleware threads the already-authenticated owner identity into the
// request context. Authentication itself happens upstream (gateway / session
// layer); this service only ever sees scoped identifiers.
func OwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerId := c.Request.Header.Get("X-Owner-Id")
		if ownerId == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing owner identity"})
			return
		}

		ctx := utils.SetOwnerIdInContext(c.Request.Context(), ownerId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CorrelationMiddleware propagates the caller's correlation id, minting one
// when absent, and echoes it back in the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.Request.Header.Get("X-Correlation-Id")
		if correlationId == "" {
			correlationId = uuid.NewString()
		}

		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Correlation-Id", correlationId)
		c.Next()
	}
}
