package middleware

import (
	"strings"

	"careersight-srv/internal/model"
	"careersight-srv/pkg/response"
	"careersight-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth verifies the Bearer token and attaches the caller scope to the
// request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: token verification failed: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := model.Scope{
			UserID:   claims.Subject,
			Username: claims.Email,
			Role:     claims.Role,
		}

		ctx := scope.SetScopeToContext(c.Request.Context(), sc)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
