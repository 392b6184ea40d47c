package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/models"
	"github.com/iPrayUST/services"
)

// GetPrayers serves the full catalog, cache-first.
func GetPrayers(sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		prayers := sync.GetPrayersWithOfflineSupport(c.Request.Context())
		if prayers == nil {
			prayers = []models.Prayer{}
		}
		c.JSON(http.StatusOK, prayers)
	}
}

// GetPrayer looks a single prayer up in the catalog.
func GetPrayer(sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		prayerID := c.Param("prayer_id")

		for _, prayer := range sync.GetPrayersWithOfflineSupport(c.Request.Context()) {
			if prayer.Prayer_ID == prayerID {
				c.JSON(http.StatusOK, prayer)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer not found"})
	}
}

// GetCategories returns the category tree. The remote is authoritative; when
// it is unreachable the tree is rebuilt from the cached catalog so the client
// still gets something to render.
func GetCategories(sync *services.SyncCoordinator, remote services.RemoteDataSource, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		categories, err := remote.FetchPrayerCategories(ctx)
		if err == nil {
			c.JSON(http.StatusOK, categories)
			return
		}
		log.Println("Error fetching categories, rebuilding from cache:", err)

		grouped := map[string][]models.Prayer{}
		var order []string
		for _, prayer := range sync.GetPrayersWithOfflineSupport(c.Request.Context()) {
			if _, seen := grouped[prayer.Category]; !seen {
				order = append(order, prayer.Category)
			}
			grouped[prayer.Category] = append(grouped[prayer.Category], prayer)
		}

		fallback := []models.PrayerCategory{}
		for _, id := range order {
			fallback = append(fallback, models.PrayerCategory{
				Category_ID: id,
				Title:       id,
				Prayers:     grouped[id],
			})
		}
		c.JSON(http.StatusOK, fallback)
	}
}

// GetSuggestedPrayers serves the curated suggestion list, cache-first.
func GetSuggestedPrayers(sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		suggested := sync.GetSuggestedPrayersWithOfflineSupport(c.Request.Context())
		if suggested == nil {
			suggested = []models.Prayer{}
		}
		c.JSON(http.StatusOK, suggested)
	}
}

// RecordPrayer notes that the current user prayed a prayer: bumps the counter
// and pushes the id onto the recent list.
func RecordPrayer(remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)
		prayerID := c.Param("prayer_id")
		if prayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
			return
		}

		if err := remote.IncrementPrayerCount(c.Request.Context(), currentUser.User_ID, prayerID); err != nil {
			log.Println("Error incrementing prayer count:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record prayer", "details": err.Error()})
			return
		}
		if err := remote.AddRecentPrayer(c.Request.Context(), currentUser.User_ID, prayerID); err != nil {
			log.Println("Error adding recent prayer:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record prayer", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Prayer recorded"})
	}
}

// GetVerseOfTheDay fetches today's verse; absent is a 404, not an error.
func GetVerseOfTheDay(remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := time.Now().Format("2006-01-02")

		verse, err := remote.FetchVerseOfTheDay(c.Request.Context(), date)
		if err != nil {
			log.Println("Error fetching verse of the day:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch verse of the day", "details": err.Error()})
			return
		}
		if verse == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No verse for today"})
			return
		}
		c.JSON(http.StatusOK, verse)
	}
}
