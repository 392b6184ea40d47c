package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/services"
)

// deviceID pulls the X-Device-ID header; device-state endpoints are scoped to
// one installed app instance, signed in or not.
func deviceID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Device-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header is required"})
		return "", false
	}
	return id, true
}

// GetDeviceState aggregates every flag and list for the calling device.
func GetDeviceState(devices *services.DeviceStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := deviceID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, devices.GetState(c.Request.Context(), id))
	}
}

// SetDeviceFlag sets one boolean flag (onboarding, overlay seen, and so on).
func SetDeviceFlag(devices *services.DeviceStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := deviceID(c)
		if !ok {
			return
		}

		value, err := strconv.ParseBool(c.DefaultQuery("value", "true"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value", "details": err.Error()})
			return
		}

		if err := devices.SetFlag(c.Request.Context(), id, c.Param("flag"), value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Flag updated"})
	}
}

// MarkTabVisited records a visited tab for the feature overlay.
func MarkTabVisited(devices *services.DeviceStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := deviceID(c)
		if !ok {
			return
		}

		if err := devices.MarkTabVisited(c.Request.Context(), id, c.Param("tab")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tab recorded"})
	}
}

// AddDeviceBookmark stores a bookmark for a device that has no signed-in
// user.
func AddDeviceBookmark(devices *services.DeviceStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := deviceID(c)
		if !ok {
			return
		}

		if err := devices.AddBookmark(c.Request.Context(), id, c.Param("prayer_id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, devices.GetBookmarks(c.Request.Context(), id))
	}
}

func RemoveDeviceBookmark(devices *services.DeviceStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := deviceID(c)
		if !ok {
			return
		}

		if err := devices.RemoveBookmark(c.Request.Context(), id, c.Param("prayer_id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, devices.GetBookmarks(c.Request.Context(), id))
	}
}

// RecordDevicePrayer mirrors RecordPrayer for unauthenticated devices: bumps
// the local counter and the recent list.
func RecordDevicePrayer(devices *services.DeviceStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := deviceID(c)
		if !ok {
			return
		}
		prayerID := c.Param("prayer_id")

		if err := devices.IncrementPrayerCount(c.Request.Context(), id, prayerID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := devices.AddRecentPrayer(c.Request.Context(), id, prayerID); err != nil {
			log.Println("Error adding device recent prayer:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record prayer", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Prayer recorded"})
	}
}
