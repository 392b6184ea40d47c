package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/models"
	"github.com/iPrayUST/services"
)

// GetUserProfile returns the authenticated user's profile as loaded by
// CheckAuth (cache-first).
func GetUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)
		c.JSON(http.StatusOK, currentUser)
	}
}

// UpdateUserPreferences patches the reminder preferences, writes them to the
// remote, and refreshes the cached profile so the change is visible on the
// next read.
func UpdateUserPreferences(remote services.RemoteDataSource, sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)

		var body models.UserPreferencesUpdate
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		prefs := currentUser.Preferences
		if body.Morning_Reminder != nil {
			prefs.Morning_Reminder = *body.Morning_Reminder
		}
		if body.Evening_Reminder != nil {
			prefs.Evening_Reminder = *body.Evening_Reminder
		}
		if body.Reminder_Time != nil {
			// Reminder scheduling compares clock strings, so the stored value
			// must be zero-padded 24h "HH:MM".
			parsed, err := time.Parse("15:04", *body.Reminder_Time)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder time, expected HH:MM", "details": err.Error()})
				return
			}
			prefs.Reminder_Time = parsed.Format("15:04")
		}

		if err := remote.UpdateUserPreferences(c.Request.Context(), currentUser.User_ID, prefs); err != nil {
			log.Println("Error updating preferences:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences", "details": err.Error()})
			return
		}

		profile := sync.SyncUserProfile(c.Request.Context(), currentUser.User_ID)
		if profile == nil {
			currentUser.Preferences = prefs
			profile = &currentUser
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GetBookmarks lists the bookmarked prayer ids on the profile.
func GetBookmarks() gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)

		bookmarks := currentUser.Bookmarks
		if bookmarks == nil {
			bookmarks = []string{}
		}
		c.JSON(http.StatusOK, bookmarks)
	}
}

// AddBookmark adds a prayer to the user's bookmarks. The remote write is the
// source of truth; the cached profile is refreshed afterwards.
func AddBookmark(remote services.RemoteDataSource, sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)
		prayerID := c.Param("prayer_id")
		if prayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
			return
		}

		if err := remote.AddBookmark(c.Request.Context(), currentUser.User_ID, prayerID); err != nil {
			log.Println("Error adding bookmark:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add bookmark", "details": err.Error()})
			return
		}

		profile := sync.SyncUserProfile(c.Request.Context(), currentUser.User_ID)
		c.JSON(http.StatusOK, gin.H{"message": "Bookmark added", "user": profile})
	}
}

// RemoveBookmark removes a prayer from the user's bookmarks.
func RemoveBookmark(remote services.RemoteDataSource, sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)
		prayerID := c.Param("prayer_id")
		if prayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
			return
		}

		if err := remote.RemoveBookmark(c.Request.Context(), currentUser.User_ID, prayerID); err != nil {
			log.Println("Error removing bookmark:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove bookmark", "details": err.Error()})
			return
		}

		profile := sync.SyncUserProfile(c.Request.Context(), currentUser.User_ID)
		c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed", "user": profile})
	}
}

// AddRecentPrayer pushes a prayer onto the user's recent list without
// touching the stats counter.
func AddRecentPrayer(remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)
		prayerID := c.Param("prayer_id")
		if prayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
			return
		}

		if err := remote.AddRecentPrayer(c.Request.Context(), currentUser.User_ID, prayerID); err != nil {
			log.Println("Error adding recent prayer:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add recent prayer", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recent prayer recorded"})
	}
}

// GetRecentPrayers lists the user's recent prayers, most recent first.
func GetRecentPrayers(remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)

		recent, err := remote.FetchRecentPrayers(c.Request.Context(), currentUser.User_ID)
		if err != nil {
			log.Println("Error fetching recent prayers:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent prayers", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, recent)
	}
}

// GetPrayerStats returns the per-prayer counters for the user.
func GetPrayerStats(remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUser := c.MustGet("currentUser").(models.UserProfile)

		stats, err := remote.FetchPrayerStats(c.Request.Context(), currentUser.User_ID)
		if err != nil {
			log.Println("Error fetching prayer stats:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer stats", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
