package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
	"github.com/shopadmin/backend/internal/application/export"
	financeapp "github.com/shopadmin/backend/internal/application/finance"
	identityapp "github.com/shopadmin/backend/internal/application/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/shopadmin/backend/internal/infrastructure/storage"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
	"github.com/shopadmin/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	defer logger.Sync(appLogger)

	appLogger.Info("starting catalog backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, logger.NewGormLogger(appLogger, cfg.Log.Level))
	if err != nil {
		appLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	certificateRepo := persistence.NewGormCertificateRepository(db.DB)
	modelRepo := persistence.NewGormProductModelRepository(db.DB)
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Idempotency store for export generation
	idempotencyStore := newIdempotencyStore(cfg, appLogger)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			appLogger.Error("failed to close idempotency store", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, attributeRepo, brandRepo, categoryRepo)
	attributeService := catalogapp.NewAttributeService(attributeRepo)
	brandService := catalogapp.NewBrandService(brandRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	warehouseService := catalogapp.NewWarehouseService(warehouseRepo, regionRepo, stockRepo)
	certificateService := catalogapp.NewCertificateService(certificateRepo)
	modelService := catalogapp.NewModelService(modelRepo, brandRepo)
	regionService := catalogapp.NewRegionService(regionRepo)
	currencyService := financeapp.NewCurrencyService(currencyRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService)

	exportOpts := []export.ServiceOption{}
	exportHandlerOpts := []handler.ExportHandlerOption{
		handler.WithIdempotencyStore(idempotencyStore, cfg.Export.IdempotencyTTL),
	}
	if cfg.Export.StoreArtifacts {
		artifactStore := newArtifactStore(cfg, appLogger)
		exportOpts = append(exportOpts, export.WithArtifactStore(artifactStore))
		exportHandlerOpts = append(exportHandlerOpts, handler.WithArchiving(cfg.Storage.PresignExpiration))
	}
	exportService := export.NewService(db.DB, attributeRepo, currencyRepo, userRepo, appLogger, exportOpts...)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		appLogger.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(appLogger))
	engine.Use(logger.Recovery(appLogger))
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)

	router.NewRouter(engine).
		RegisterPublic(handler.NewHealthHandler(db.DB)).
		RegisterPublic(router.RegistrarFunc(authHandler.RegisterPublicRoutes)).
		Register(authHandler).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewAttributeHandler(attributeService)).
		Register(handler.NewTaxonomyHandler(brandService, modelService, categoryService, certificateService, regionService, warehouseService)).
		Register(handler.NewCurrencyHandler(currencyService)).
		Register(handler.NewExportHandler(exportService, exportHandlerOpts...)).
		Setup(middleware.JWTAuth(jwtService))

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		appLogger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}

// newIdempotencyStore picks redis when configured and reachable, falling
// back to the in-process store
func newIdempotencyStore(cfg *config.Config, appLogger *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err == nil {
			appLogger.Info("using redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
			return store
		}
		appLogger.Warn("redis unavailable, using in-memory idempotency store", zap.Error(err))
	}
	return cache.NewInMemoryIdempotencyStore()
}

// newArtifactStore picks the configured export artifact backend
func newArtifactStore(cfg *config.Config, appLogger *zap.Logger) export.ArtifactStore {
	if cfg.Storage.Driver == "s3" {
		store, err := storage.NewS3ArtifactStore(&cfg.Storage, storage.WithLogger(appLogger))
		if err != nil {
			appLogger.Fatal("failed to initialize s3 artifact store", zap.Error(err))
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			appLogger.Warn("failed to ensure artifact bucket", zap.Error(err))
		}
		return store
	}
	appLogger.Info("using stub artifact store")
	return storage.NewStubArtifactStore()
}
