package middleware

import (
	"careersight-srv/pkg/log"
	"careersight-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery recovers from handler panics and returns an opaque 500.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
