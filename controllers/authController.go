package controllers

import (
	"log"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/iPrayUST/initializers"
	"github.com/iPrayUST/services"
)

type sessionRequest struct {
	ID_Token string `json:"idToken" binding:"required"`
}

// CreateSession exchanges a Firebase Auth ID token for a service session JWT.
// Credential checking stays with Firebase; we only mint the bearer token the
// rest of the API consumes.
func CreateSession(authClient *auth.Client, sync *services.SyncCoordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body sessionRequest
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if authClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication backend unavailable"})
			return
		}

		decoded, err := authClient.VerifyIDToken(c.Request.Context(), body.ID_Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
			return
		}

		profile := sync.GetUserProfileWithOfflineSupport(c.Request.Context(), decoded.UID)

		role := "user"
		if profile != nil && profile.Role != "" {
			role = profile.Role
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":   decoded.UID,
			"role": role,
			"exp":  time.Now().Add(30 * 24 * time.Hour).Unix(),
		})

		signed, err := token.SignedString([]byte(initializers.Cfg.Secret))
		if err != nil {
			log.Println("Error signing session token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": signed,
			"user":  profile,
		})
	}
}
