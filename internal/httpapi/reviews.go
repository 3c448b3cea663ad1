package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-backend/internal/service"
)

func (s *Server) createReview(c *gin.Context) {
	var in service.ReviewInput
	if !s.bindJSON(c, &in) {
		return
	}
	r, err := s.svc.Reviews.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) reviewsByBook(c *gin.Context) {
	out, err := s.svc.Reviews.ListByBook(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) reviewsByUser(c *gin.Context) {
	out, err := s.svc.Reviews.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteReview(c *gin.Context) {
	if err := s.svc.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
