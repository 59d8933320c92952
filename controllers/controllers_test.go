package controllers

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/services"
	"github.com/rentwheels/car-rental-api/store"
)

func testCatalog() []models.Car {
	return []models.Car{
		{
			VIN:         "1HGBH41JXMN109186",
			CarType:     "Sedan",
			Brand:       "Toyota",
			CarModel:    "Camry",
			Image:       "/images/camry.jpg",
			FuelType:    "Petrol",
			PricePerDay: 50,
			Available:   true,
			Description: "Comfortable mid-size sedan",
		},
		{
			VIN:         "5YJ3E1EA7KF317528",
			CarType:     "Sedan",
			Brand:       "Tesla",
			CarModel:    "Model 3",
			Image:       "/images/model3.jpg",
			FuelType:    "Electric",
			PricePerDay: 110,
			Available:   true,
		},
		{
			VIN:         "2T1BURHE5JC034972",
			CarType:     "SUV",
			Brand:       "Toyota",
			CarModel:    "RAV4",
			Image:       "/images/rav4.jpg",
			FuelType:    "Hybrid",
			PricePerDay: 85,
			Available:   true,
		},
	}
}

// setupTestRouter builds the storefront routes over a seeded memory store,
// mirroring the production routing table.
func setupTestRouter(t *testing.T, cars []models.Car) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	require.NoError(t, st.SeedCars(context.Background(), cars))

	logger := zap.NewNop().Sugar()
	catalog := services.NewCatalogService(st, services.NewLocalImageService(), logger)
	orders := services.NewOrderService(st, logger)

	carCtrl := NewCarController(catalog)
	orderCtrl := NewOrderController(orders)
	suggestionCtrl := NewSuggestionController(catalog)

	router := gin.New()
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

	return router, st
}
