package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const actorIDKey = "actor_id"

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Auth rejects requests without a valid bearer token and stores the
// authenticated user id for handlers.
func Auth(parser TokenParser, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			unauthenticated(c, "missing bearer token")
			return
		}

		userID, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			logger.Debugw("token rejected", "request_id", RequestID(c), "error", err)
			unauthenticated(c, "invalid or expired token")
			return
		}

		SetActorID(c, userID)
		c.Next()
	}
}

// SetActorID records the authenticated user id on the request context.
func SetActorID(c *gin.Context, userID string) {
	c.Set(actorIDKey, userID)
}

// ActorID returns the authenticated user id set by Auth.
func ActorID(c *gin.Context) (string, bool) {
	id := c.GetString(actorIDKey)
	return id, id != ""
}

func unauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHENTICATED",
			"message": message,
		},
	})
}
