package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-backend/internal/service"
)

func (s *Server) syncAccount(c *gin.Context) {
	var in service.AccountSyncInput
	if !s.bindJSON(c, &in) {
		return
	}
	acc, err := s.svc.Accounts.Sync(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (s *Server) getAccount(c *gin.Context) {
	acc, err := s.svc.Accounts.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (s *Server) updateAccount(c *gin.Context) {
	var in service.AccountUpdateInput
	if !s.bindJSON(c, &in) {
		return
	}
	acc, err := s.svc.Accounts.Update(c.Request.Context(), c.Param("uid"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}
