package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/pkg/reporter"
)

// Recovery returns a middleware that recovers from panics, logs them and
// forwards them to the error reporter.
func Recovery(logger *zap.SugaredLogger, rep reporter.Reporter) gin.HandlerFunc {
	if rep == nil {
		rep = reporter.Nop{}
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Errorw("panic recovered",
					"error", rec,
					"request_id", RequestID(c),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"stack", string(debug.Stack()),
				)

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				rep.Report(err, map[string]string{
					"component":  "http",
					"route":      c.FullPath(),
					"request_id": RequestID(c),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "internal server error",
					},
				})
			}
		}()

		c.Next()
	}
}
