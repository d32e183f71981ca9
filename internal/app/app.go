// Package app wires configuration, storage and handlers into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"artisan_market/internal/cache"
	"artisan_market/internal/config"
	"artisan_market/internal/controllers"
	"artisan_market/internal/logger"
	"artisan_market/internal/middleware"
	"artisan_market/internal/repository"
	"artisan_market/internal/routes"
	"artisan_market/internal/services"
	"artisan_market/internal/storage"
)

// sellerLoginPolicy lets pending and rejected sellers into the dashboard,
// which then shows their review status.
const sellerLoginPolicy = services.AllowAnyStatus

type Application struct {
	Config *config.Config
	Router *gin.Engine
	Store  repository.Store
	Auth   *services.AuthService
	Seller *services.SellerService

	closers []io.Closer
}

// New opens the store named by cfg.DBDriver and builds the application on it.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Application, error) {
	var (
		store   repository.Store
		closers []io.Closer
	)
	if cfg.DBDriver == config.DriverMemory {
		logrus.Warn("DB_DRIVER=memory: data is lost on restart")
		store = repository.NewMemoryStore()
	} else {
		db, err := config.OpenDB(cfg, logger.GormLogger())
		if err != nil {
			return nil, err
		}
		if err := config.Migrate(db); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		closers = append(closers, sqlDB)
		store = repository.NewGormStore(db)
		logrus.WithField("driver", cfg.DBDriver).Info("database connected")
	}

	a, err := NewWithStore(ctx, cfg, store, logOut)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, err
	}
	a.closers = append(closers, a.closers...)
	return a, nil
}

// NewWithStore builds the application on an existing store. logOut receives
// request logs; nil disables them.
func NewWithStore(ctx context.Context, cfg *config.Config, store repository.Store, logOut io.Writer) (*Application, error) {
	a := &Application{Config: cfg, Store: store}

	var blacklist middleware.Blacklist = middleware.NopBlacklist{}
	if cfg.Redis.Enabled() {
		rb, err := cache.NewRedisBlacklist(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rb)
		blacklist = rb
		logrus.WithField("addr", cfg.Redis.Addr).Info("token revocation enabled")
	}

	var images storage.ImageStore
	assetsDir := cfg.UploadDir
	if cfg.MinIO.Enabled() {
		ms, err := storage.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			a.Close()
			return nil, err
		}
		images = ms
		assetsDir = ""
		logrus.WithField("bucket", cfg.MinIO.Bucket).Info("images stored in minio")
	} else {
		ds, err := storage.NewDiskStore(cfg.UploadDir, "/assets")
		if err != nil {
			a.Close()
			return nil, err
		}
		images = ds
	}

	tokens := middleware.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	gate := middleware.NewAuth(tokens, blacklist)

	a.Auth = services.NewAuthService(store, tokens, cfg.BcryptCost, sellerLoginPolicy)
	a.Seller = services.NewSellerService(store)
	catalog := services.NewCatalogService(store, images, a.Seller)
	orders := services.NewOrderService(store)

	var requestLog gin.HandlerFunc
	if logOut != nil {
		requestLog = logger.RequestLogger(logOut)
	}

	a.Router = routes.SetupRouter(routes.Handlers{
		Gate:      gate,
		Auth:      controllers.NewAuthController(a.Auth, gate),
		Seller:    controllers.NewSellerController(a.Auth, a.Seller),
		Product:   controllers.NewProductController(catalog),
		Order:     controllers.NewOrderController(orders),
		Delivery:  controllers.NewDeliveryController(orders),
		Resell:    controllers.NewResellController(services.NewResellService(store, images)),
		Contact:   controllers.NewContactController(services.NewContactService(store)),
		Admin:     controllers.NewAdminController(a.Auth, a.Seller),
		Signaling: controllers.NewSignalingHub(cfg.CORSOrigins),
	}, routes.Options{
		CORSOrigins:   cfg.CORSOrigins,
		AssetsDir:     assetsDir,
		FrontendDir:   cfg.FrontendDir,
		RequestLogger: requestLog,
	})
	return a, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the database and redis connections.
func (a *Application) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			logrus.WithError(err).Warn("close failed")
		}
	}
	a.closers = nil
}
