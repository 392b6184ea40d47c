package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/services"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GetSyncStatus reports the persisted online flag and last sync time.
func GetSyncStatus(sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sync.GetSyncStatus(c.Request.Context()))
	}
}

// ForceRefresh drops the snapshot so the next reads go remote. This is the
// pull-to-refresh path and the only user-triggered retry mechanism.
func ForceRefresh(sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sync.ForceRefresh(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
	}
}
