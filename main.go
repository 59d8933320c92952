package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentwheels/car-rental-api/config"
	"github.com/rentwheels/car-rental-api/controllers"
	"github.com/rentwheels/car-rental-api/middleware"
	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/services"
	"github.com/rentwheels/car-rental-api/store"
	"github.com/rentwheels/car-rental-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Infow("starting car rental API server", "env", cfg.GoEnv, "backend", cfg.StorageBackend)

	st, err := openStore(cfg)
	if err != nil {
		logger.Fatalw("failed to open store", "backend", cfg.StorageBackend, "error", err)
	}
	defer st.Close()

	if err := seedCatalog(cfg, st, logger); err != nil {
		logger.Fatalw("failed to seed catalog", "seed_file", cfg.SeedFile, "error", err)
	}

	images, err := buildImageService(cfg)
	if err != nil {
		logger.Fatalw("failed to initialize image service", "error", err)
	}

	catalog := services.NewCatalogService(st, images, logger)
	orders := services.NewOrderService(st, logger)

	router := setupRouter(cfg, logger, catalog, orders)

	addr := ":" + cfg.Port
	logger.Infow("server listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

// setupRouter wires middleware and routes. It is separated from main so the
// integration tests can run against the production routing table.
func setupRouter(cfg *config.Config, logger *zap.SugaredLogger, catalog *services.CatalogService, orders *services.OrderService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		cors.Default(),
	)

	carCtrl := controllers.NewCarController(catalog)
	orderCtrl := controllers.NewOrderController(orders)
	suggestionCtrl := controllers.NewSuggestionController(catalog)

	router.GET("/health", healthCheck)

	router.GET("/cars", carCtrl.ListCars)
	router.GET("/cars/types", carCtrl.ListTypes)
	router.GET("/cars/brands", carCtrl.ListBrands)
	router.GET("/cars/:vin", carCtrl.GetCar)
	router.GET("/search", carCtrl.Search)
	router.GET("/suggestions", suggestionCtrl.GetSuggestions)

	router.GET("/orders", orderCtrl.ListOrders)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.POST("/orders/:id/confirm", orderCtrl.ConfirmOrder)
	router.POST("/orders/:id/cancel", orderCtrl.CancelOrder)

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Car Rental API is running",
	})
}

// openStore builds the storage backend selected by STORAGE_BACKEND.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendFile:
		return store.NewFileStore(cfg.CarsFile, cfg.OrdersFile), nil
	case config.BackendDatabase:
		return store.OpenDatabase(cfg.DatabaseURL, cfg.DatabasePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// seedCatalog loads the fixture catalog into an empty store. A missing seed
// file is tolerated: the catalog simply starts empty.
func seedCatalog(cfg *config.Config, st store.Store, logger *zap.SugaredLogger) error {
	var cars []models.Car
	if err := utils.ReadJSONFile(cfg.SeedFile, &cars); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnw("seed file not found, starting with an empty catalog", "seed_file", cfg.SeedFile)
			return nil
		}
		return err
	}

	if err := st.SeedCars(context.Background(), cars); err != nil {
		return err
	}
	logger.Infow("catalog seeded", "cars", len(cars))
	return nil
}

// buildImageService picks S3-presigned image URLs when a bucket is
// configured, and passthrough paths otherwise.
func buildImageService(cfg *config.Config) (services.ImageService, error) {
	if !cfg.UseS3() {
		return services.NewLocalImageService(), nil
	}
	s3Service, err := services.NewS3Service(cfg.AWSRegion, cfg.AWSS3Bucket, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
	if err != nil {
		return nil, err
	}
	return services.NewS3ImageService(s3Service), nil
}
