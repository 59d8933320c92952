package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-api/services"
)

// SuggestionController serves the search box autocomplete endpoint.
type SuggestionController struct {
	catalog *services.CatalogService
}

// NewSuggestionController creates a suggestion controller over the catalog service
func NewSuggestionController(catalog *services.CatalogService) *SuggestionController {
	return &SuggestionController{catalog: catalog}
}

// GetSuggestions handles GET /suggestions?q - returns matching brands,
// models and car types for the query
func (ctrl *SuggestionController) GetSuggestions(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusOK, gin.H{
			"brands":             []string{},
			"models":             []string{},
			"carTypes":           []string{},
			"descriptionMatches": []string{},
		})
		return
	}

	suggestions, err := ctrl.catalog.Suggestions(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}
