package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/service"
)

const adminIDKey = "adminId"

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= 500 {
			logger.Error("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}

// requireAdmin accepts only "Bearer <token>" headers carrying a valid admin
// token and stores the admin's id in the context.
func requireAdmin(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			abortWithError(c, apperr.Unauthorized("missing token"))
			return
		}
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if claims.Role != model.RoleAdmin {
			abortWithError(c, apperr.Unauthorized("admin access required"))
			return
		}
		c.Set(adminIDKey, claims.UserID)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.AbortWithStatusJSON(status, body)
}
