package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-backend/internal/apperr"
)

// respondError writes err as {"message", "details"} with the status of its code.
// Internal errors are logged with their cause and reported generically.
func (s *Server) respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(apperr.CodeOf(err))),
			zap.Error(err))
	}
	c.JSON(status, body)
}

func errorBody(err error) (int, gin.H) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, gin.H{"message": "internal server error"}
	}
	body := gin.H{"message": ae.Message}
	if ae.Details != nil {
		body["details"] = ae.Details
	}
	return ae.HTTPStatus(), body
}

// bindJSON decodes the body into dst and answers 400 on malformed input.
func (s *Server) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.respondError(c, apperr.Validation("invalid request body"))
		return false
	}
	return true
}
