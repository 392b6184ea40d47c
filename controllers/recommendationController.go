package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/models"
	"github.com/iPrayUST/services"
)

// GetPrayerOfTheDay picks today's featured prayer from the cached catalog.
func GetPrayerOfTheDay(sync *services.SyncCoordinator, engine *services.RecommendationEngine, remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := sync.GetPrayersWithOfflineSupport(c.Request.Context())
		if len(catalog) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No prayers available"})
			return
		}

		// Category titles only feed the reason string, so a fetch failure
		// here is not worth failing the request over.
		categories, err := remote.FetchPrayerCategories(c.Request.Context())
		if err != nil {
			log.Println("Error fetching categories for recommendation:", err)
		}

		result := engine.GetPrayerOfTheDay(catalog, categories, time.Now())
		c.JSON(http.StatusOK, result)
	}
}

// GetSuggestedForNow returns the time-of-day suggestion strip (max four, in
// catalog order).
func GetSuggestedForNow(sync *services.SyncCoordinator, engine *services.RecommendationEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := sync.GetPrayersWithOfflineSupport(c.Request.Context())

		suggested := engine.GetSuggestedPrayers(catalog, time.Now())
		if suggested == nil {
			suggested = []models.Prayer{}
		}
		c.JSON(http.StatusOK, gin.H{
			"context": services.GetTimeContext(time.Now()),
			"prayers": suggested,
		})
	}
}
