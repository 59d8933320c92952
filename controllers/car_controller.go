package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/services"
	"github.com/rentwheels/car-rental-api/store"
)

// CarController serves the catalog browsing and search endpoints.
type CarController struct {
	catalog *services.CatalogService
}

// NewCarController creates a car controller over the catalog service
func NewCarController(catalog *services.CatalogService) *CarController {
	return &CarController{catalog: catalog}
}

// ListCars handles GET /cars - returns the full catalog
func (ctrl *CarController) ListCars(c *gin.Context) {
	cars, err := ctrl.catalog.ListCars(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GetCar handles GET /cars/:vin - returns a single car by VIN
func (ctrl *CarController) GetCar(c *gin.Context) {
	vin := c.Param("vin")

	car, err := ctrl.catalog.GetCar(c.Request.Context(), vin)
	if errors.Is(err, store.ErrCarNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch car"})
		return
	}
	c.JSON(http.StatusOK, car)
}

// ListTypes handles GET /cars/types - returns the type filter facet
func (ctrl *CarController) ListTypes(c *gin.Context) {
	types, err := ctrl.catalog.CarTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch car types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListBrands handles GET /cars/brands - returns the brand filter facet
func (ctrl *CarController) ListBrands(c *gin.Context) {
	brands, err := ctrl.catalog.CarBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch car brands"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

// Search handles GET /search?query&carType&brand - filters the catalog
func (ctrl *CarController) Search(c *gin.Context) {
	var filters models.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}

	// The UI sends "All" for an unselected facet
	if filters.CarType == models.FacetAll {
		filters.CarType = ""
	}
	if filters.Brand == models.FacetAll {
		filters.Brand = ""
	}

	cars, err := ctrl.catalog.Search(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search cars"})
		return
	}
	c.JSON(http.StatusOK, cars)
}
