package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-backend/internal/service"
)

func (s *Server) listAddresses(c *gin.Context) {
	out, err := s.svc.Addresses.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createAddress(c *gin.Context) {
	var in service.AddressInput
	if !s.bindJSON(c, &in) {
		return
	}
	addr, err := s.svc.Addresses.Create(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (s *Server) updateAddress(c *gin.Context) {
	var in service.AddressInput
	if !s.bindJSON(c, &in) {
		return
	}
	addr, err := s.svc.Addresses.Update(c.Request.Context(), c.Param("userId"), c.Param("id"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (s *Server) deleteAddress(c *gin.Context) {
	if err := s.svc.Addresses.Delete(c.Request.Context(), c.Param("userId"), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	out, err := s.svc.PaymentMethods.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createPaymentMethod(c *gin.Context) {
	var in service.PaymentMethodInput
	if !s.bindJSON(c, &in) {
		return
	}
	pm, err := s.svc.PaymentMethods.Create(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pm)
}

func (s *Server) updatePaymentMethod(c *gin.Context) {
	var in service.PaymentMethodInput
	if !s.bindJSON(c, &in) {
		return
	}
	pm, err := s.svc.PaymentMethods.Update(c.Request.Context(), c.Param("userId"), c.Param("id"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pm)
}

func (s *Server) deletePaymentMethod(c *gin.Context) {
	if err := s.svc.PaymentMethods.Delete(c.Request.Context(), c.Param("userId"), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment method deleted"})
}
