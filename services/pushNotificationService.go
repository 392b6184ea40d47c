package services

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/iPrayUST/initializers"
	"github.com/iPrayUST/models"
)

type PushNotificationService struct {
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	pushService = &PushNotificationService{}

	if initializers.FirebaseApp == nil {
		log.Println("Firebase app not initialized, push notifications disabled")
		return
	}

	client, err := initializers.FirebaseApp.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return
	}

	pushService.fcmClient = client
	log.Println("Push notification service initialized with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

// SendToUser delivers a push to the token on the user's profile.
func (s *PushNotificationService) SendToUser(ctx context.Context, profile *models.UserProfile, payload NotificationPayload) error {
	if profile == nil || profile.Push_Token == "" {
		return fmt.Errorf("no push token for user")
	}
	return s.SendToToken(ctx, profile.Push_Token, payload)
}

func (s *PushNotificationService) SendToToken(ctx context.Context, token string, payload NotificationPayload) error {
	if s.fcmClient == nil {
		return fmt.Errorf("push notification service not initialized")
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}
	if payload.Sound != "" {
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: payload.Sound},
			},
		}
	}

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("Sent push notification: %s", response)
	return nil
}
