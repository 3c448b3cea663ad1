package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-backend/internal/service"
)

func (s *Server) createOrder(c *gin.Context) {
	var in service.OrderInput
	if !s.bindJSON(c, &in) {
		return
	}
	order, err := s.svc.Orders.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) ordersByEmail(c *gin.Context) {
	orders, err := s.svc.Orders.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.svc.Orders.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.svc.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var in service.OrderStatusInput
	if !s.bindJSON(c, &in) {
		return
	}
	order, err := s.svc.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
