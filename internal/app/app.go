// Package app wires configuration, storage, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"bookstore-backend/internal/config"
	"bookstore-backend/internal/httpapi"
	"bookstore-backend/internal/logging"
	"bookstore-backend/internal/repository"
	mongorepo "bookstore-backend/internal/repository/mongo"
	"bookstore-backend/internal/service"
	"bookstore-backend/internal/shutdown"
	"bookstore-backend/internal/upload"
	"bookstore-backend/internal/validation"
)

// App holds everything needed to serve and to shut down cleanly.
type App struct {
	logger      *zap.Logger
	server      *http.Server
	shutdownMgr *shutdown.Manager
}

// Build connects to MongoDB, prepares indexes, seeds the admin user and
// assembles the HTTP server.
func Build(cfg config.Config, logger *zap.Logger) (*App, error) {
	const op = "app.Build"
	logger = logger.With(zap.String("op", op))
	cfg.Log(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("Connecting to MongoDB")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("%s: connect mongo: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: ping mongo: %w", op, err)
	}
	logger.Info("MongoDB connection established")

	db := client.Database(cfg.MongoDBName)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: ensure indexes: %w", op, err)
	}

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repos := mongorepo.NewSet(db)
	svc := NewServices(repos, cfg, logger)

	if cfg.AdminUsername != "" {
		if err := svc.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("%s: seed admin: %w", op, err)
		}
	}

	if cfg.AppEnv == config.EnvDocker {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.Config{
		CORSOrigins: cfg.CORSOrigins,
		Health: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}, svc, uploads, logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	shutdownMgr := shutdown.New(cfg.ShutdownTimeout, logger)
	// Hooks run in reverse: the server stops before mongo disconnects.
	shutdownMgr.Add("mongodb", shutdown.MongoClient(client))
	shutdownMgr.Add("http_server", shutdown.HTTPServer(server))

	return &App{logger: logger, server: server, shutdownMgr: shutdownMgr}, nil
}

// NewServices builds the service layer on top of repos.
func NewServices(repos repository.Set, cfg config.Config, logger *zap.Logger) httpapi.Services {
	v := validation.New()
	return httpapi.Services{
		Catalog:        service.NewCatalogService(repos.Books, v, logger),
		Orders:         service.NewOrderService(repos.Orders, repos.Books, repos.Carts, v, logger),
		Carts:          service.NewCartService(repos.Carts, v),
		Favorites:      service.NewFavoriteService(repos.Favorites, v),
		Addresses:      service.NewAddressService(repos.Addresses, v),
		PaymentMethods: service.NewPaymentMethodService(repos.PaymentMethods, v),
		Reviews:        service.NewReviewService(repos.Reviews, v),
		Accounts:       service.NewAccountService(repos.Accounts, v),
		Dashboard:      service.NewDashboardService(repos.Orders, repos.Books, repos.Users),
		Auth:           service.NewAuthService(repos.Users, cfg.JWTSecret, cfg.JWTTTL, logger),
	}
}

// Run serves HTTP and blocks until a shutdown signal or a fatal server error.
func (a *App) Run() error {
	defer logging.Sync(a.logger)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	var serveErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
			cancel(err)
		}
	}()

	a.shutdownMgr.Wait(ctx)
	<-done

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	a.logger.Info("Bookstore service stopped")
	return nil
}
