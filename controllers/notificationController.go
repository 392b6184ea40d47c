package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/services"
)

type sendNotificationRequest struct {
	User_ID string `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendPushNotification lets an admin push an ad-hoc notification to one user.
func SendPushNotification(remote services.RemoteDataSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body sendNotificationRequest
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		profile, err := remote.FetchUserProfile(c.Request.Context(), body.User_ID)
		if err != nil {
			log.Println("Error fetching profile for notification:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user", "details": err.Error()})
			return
		}
		if profile == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		push := services.GetPushNotificationService()
		if push == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notification service unavailable"})
			return
		}

		err = push.SendToUser(c.Request.Context(), profile, services.NotificationPayload{
			Title: body.Title,
			Body:  body.Body,
			Data:  map[string]string{"type": "admin"},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
	}
}
