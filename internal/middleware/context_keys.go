package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const actorIDKey = contextKey("actorID")

// actorHeader carries the acting user's identity. Authentication itself is an
// upstream concern; the engine only needs a stable actor ID for audit fields.
const actorHeader = "X-Actor-ID"

// ActorMiddleware extracts the acting user ID from the request header and
// stores it in the request context. Requests without an actor are rejected
// since every ledger mutation must be attributable.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorFromCtx retrieves the acting user ID from the context.
// It returns the ID and a boolean indicating if it was found.
func GetActorFromCtx(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorIDKey).(string)
	return actorID, ok
}
