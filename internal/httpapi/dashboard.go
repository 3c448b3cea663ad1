package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-backend/internal/service"
)

func (s *Server) adminLogin(c *gin.Context) {
	var in service.LoginInput
	if !s.bindJSON(c, &in) {
		return
	}
	res, err := s.svc.Auth.Login(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) dashboardOverview(c *gin.Context) {
	ov, err := s.svc.Dashboard.Overview(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (s *Server) bestSellers(c *gin.Context) {
	out, err := s.svc.Dashboard.BestSellers(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) lastSeen(c *gin.Context) {
	count, err := s.svc.Dashboard.LastSeen(c.Request.Context(), c.GetString(adminIDKey))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) setLastSeen(c *gin.Context) {
	var req struct {
		Count int `json:"count"`
	}
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.svc.Dashboard.SetLastSeen(c.Request.Context(), c.GetString(adminIDKey), req.Count); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": req.Count})
}
