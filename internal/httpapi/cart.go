package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-backend/internal/service"
)

func (s *Server) getCart(c *gin.Context) {
	cart, err := s.svc.Carts.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) addToCart(c *gin.Context) {
	var in service.CartItemInput
	if !s.bindJSON(c, &in) {
		return
	}
	cart, err := s.svc.Carts.AddItem(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !s.bindJSON(c, &req) {
		return
	}
	cart, err := s.svc.Carts.UpdateQuantity(c.Request.Context(), c.Param("userId"), c.Param("productId"), req.Quantity)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) removeCartItem(c *gin.Context) {
	cart, err := s.svc.Carts.RemoveItem(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) clearCart(c *gin.Context) {
	cart, err := s.svc.Carts.Clear(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) getFavorites(c *gin.Context) {
	fav, err := s.svc.Favorites.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fav)
}

func (s *Server) addFavorite(c *gin.Context) {
	var in service.FavoriteItemInput
	if !s.bindJSON(c, &in) {
		return
	}
	fav, err := s.svc.Favorites.AddItem(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fav)
}

func (s *Server) removeFavorite(c *gin.Context) {
	fav, err := s.svc.Favorites.RemoveItem(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fav)
}

func (s *Server) clearFavorites(c *gin.Context) {
	fav, err := s.svc.Favorites.Clear(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fav)
}
