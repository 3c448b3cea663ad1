// Package httpapi exposes the bookstore services over HTTP with gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-backend/internal/service"
	"bookstore-backend/internal/upload"
)

// Services is everything the handlers call into.
type Services struct {
	Catalog        *service.CatalogService
	Orders         *service.OrderService
	Carts          *service.CartService
	Favorites      *service.FavoriteService
	Addresses      *service.AddressService
	PaymentMethods *service.PaymentMethodService
	Reviews        *service.ReviewService
	Accounts       *service.AccountService
	Dashboard      *service.DashboardService
	Auth           *service.AuthService
}

type Config struct {
	CORSOrigins []string
	// Health reports readiness of backing stores; nil means always ready.
	Health func(ctx context.Context) error
}

type Server struct {
	svc     Services
	uploads *upload.Store
	health  func(ctx context.Context) error
	logger  *zap.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg Config, svc Services, uploads *upload.Store, logger *zap.Logger) *gin.Engine {
	s := &Server{svc: svc, uploads: uploads, health: cfg.Health, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", s.healthz)
	r.Static(upload.PublicPrefix, uploads.Dir)

	api := r.Group("/api")
	admin := requireAdmin(svc.Auth)

	// Auth
	api.POST("/auth/admin", s.adminLogin)

	// Books
	api.GET("/books", s.listBooks)
	api.GET("/books/search", s.searchBooks)
	api.GET("/books/:id", s.getBook)
	api.POST("/books", admin, s.createBook)
	api.PUT("/books/:id", admin, s.updateBook)
	api.DELETE("/books/:id", admin, s.deleteBook)

	// Orders
	api.POST("/orders", s.createOrder)
	api.GET("/orders/email/:email", s.ordersByEmail)
	api.GET("/orders", admin, s.listOrders)
	api.GET("/orders/:id", admin, s.getOrder)
	api.PATCH("/orders/:id/status", admin, s.updateOrderStatus)

	// Cart
	api.GET("/cart/:userId", s.getCart)
	api.POST("/cart/:userId", s.addToCart)
	api.PUT("/cart/:userId/items/:productId", s.updateCartItem)
	api.DELETE("/cart/:userId/items/:productId", s.removeCartItem)
	api.DELETE("/cart/:userId", s.clearCart)

	// Favorites
	api.GET("/favorites/:userId", s.getFavorites)
	api.POST("/favorites/:userId", s.addFavorite)
	api.DELETE("/favorites/:userId/items/:productId", s.removeFavorite)
	api.DELETE("/favorites/:userId", s.clearFavorites)

	// Addresses
	api.GET("/address/:userId", s.listAddresses)
	api.POST("/address/:userId", s.createAddress)
	api.PUT("/address/:userId/:id", s.updateAddress)
	api.DELETE("/address/:userId/:id", s.deleteAddress)

	// Payment methods
	api.GET("/payment-method/:userId", s.listPaymentMethods)
	api.POST("/payment-method/:userId", s.createPaymentMethod)
	api.PUT("/payment-method/:userId/:id", s.updatePaymentMethod)
	api.DELETE("/payment-method/:userId/:id", s.deletePaymentMethod)

	// Reviews
	api.POST("/reviews", s.createReview)
	api.GET("/reviews/book/:bookId", s.reviewsByBook)
	api.GET("/reviews/user/:userId", s.reviewsByUser)
	api.DELETE("/reviews/:id", s.deleteReview)

	// Account
	api.POST("/account/sync", s.syncAccount)
	api.GET("/account/:uid", s.getAccount)
	api.PUT("/account/:uid", s.updateAccount)

	// Dashboard
	dash := api.Group("/dashboard", admin)
	{
		dash.GET("", s.dashboardOverview)
		dash.GET("/best-sellers", s.bestSellers)
		dash.GET("/last-seen", s.lastSeen)
		dash.PUT("/last-seen", s.setLastSeen)
	}

	return r
}

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
