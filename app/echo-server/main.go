package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartMarket/app/echo-server/router"
	"smartMarket/business/orders"
	"smartMarket/business/product"
	"smartMarket/business/recommender"
	"smartMarket/internal/middleware"
	"smartMarket/internal/repository/catalogapi"
	psqlRepo "smartMarket/internal/repository/postgres"
	redisRepo "smartMarket/internal/repository/redis"
	"smartMarket/internal/rest"
	"smartMarket/pkg/config"
	"smartMarket/pkg/database"
	redisClient "smartMarket/pkg/database/redis"
	"smartMarket/pkg/logger"
	"smartMarket/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting SmartMarket", "version", cfg.App.Version)

	metrics.Init()

	var db *gorm.DB
	if cfg.UsesPostgres() {
		db, err = database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		logger.Info("Database connected successfully")

		if err := psqlRepo.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		if cfg.Database.Seed {
			if err := psqlRepo.SeedProducts(db, catalogapi.FallbackProducts()); err != nil {
				logger.Error("Failed to seed products", "error", err)
			}
		}
	}

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb, err = redisClient.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		logger.Info("Redis connected successfully")
	}

	// Init repo
	var (
		source      product.CatalogSource
		productRepo product.ProductRepository
	)
	switch cfg.Catalog.Source {
	case config.CatalogPostgres:
		repo := psqlRepo.NewProductRepository(db)
		source, productRepo = repo, repo
	case config.CatalogRemote:
		source = catalogapi.NewRemoteCatalog(catalogapi.RemoteConfig{
			URL:     cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout,
		})
	default:
		source = catalogapi.NewStaticCatalog(catalogapi.FallbackProducts())
	}

	// preferences, carts and orders share one store
	var (
		prefsRepo recommender.PreferenceRepository
		cartRepo  orders.CartRepository
		orderRepo orders.OrdersRepository
	)
	if cfg.Preferences.Store == config.StorePostgres {
		prefsRepo = psqlRepo.NewPreferenceRepository(db)
		cartRepo = psqlRepo.NewCartRepository(db)
		orderRepo = psqlRepo.NewOrdersRepository(db)
	} else {
		prefsRepo = redisRepo.NewPreferenceRepository(rdb, cfg.Preferences.TTL)
		cartRepo = redisRepo.NewCartRepository(rdb, cfg.Preferences.TTL)
		orderRepo = redisRepo.NewOrdersRepository(rdb)
	}

	// Init service
	productService := product.NewProductService(source, productRepo, catalogapi.FallbackProducts())

	engineCfg := recommender.DefaultConfig()
	engineCfg.SearchLatency = cfg.Recommender.SearchLatency
	engineCfg.DefaultCount = cfg.Recommender.DefaultCount
	engine := recommender.NewEngine(productService, prefsRepo, engineCfg, recommender.NewRandSource(cfg.Recommender.NoiseSeed))
	ordersService := orders.NewOrdersService(cartRepo, orderRepo, productService, engine)

	// Init handler
	productHandler := rest.NewProductHandler(productService, cfg.Server.RequestTimeout)
	recommendationHandler := rest.NewRecommendationHandler(engine, cfg.Recommender.DefaultCount, cfg.Server.RequestTimeout)
	preferenceHandler := rest.NewPreferenceHandler(engine)
	ordersHandler := rest.NewOrdersHandler(ordersService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.HeaderUserKey, middleware.HeaderRequestID},
	}))
	e.Use(middleware.Trace())
	e.Use(metrics.Middleware())

	// Setup routes
	router.SetMetricsRoute(e)
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler)
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetPreferenceRoutes(api, preferenceHandler)
	router.SetCartRoutes(api, ordersHandler)
	router.SetOrdersRoutes(api, ordersHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Failed to close redis", "error", err)
	}

	logger.Info("Server stopped")
}
