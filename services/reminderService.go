package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iPrayUST/models"
)

const defaultMorningReminderTime = "08:00"

// ReminderService periodically scans for users with reminders enabled and
// dispatches a push (and, when configured, an email with the verse of the
// day) once per user per slot per day. The once-per-day debounce is a KV
// record keyed by user, slot and date.
type ReminderService struct {
	remote      RemoteDataSource
	kv          KV
	eveningTime string // "HH:MM"
	interval    time.Duration
	now         func() time.Time
}

func NewReminderService(remote RemoteDataSource, kv KV, eveningTime string, interval time.Duration) *ReminderService {
	return &ReminderService{
		remote:      remote,
		kv:          kv,
		eveningTime: eveningTime,
		interval:    interval,
		now:         time.Now,
	}
}

// Run blocks until ctx is cancelled, checking for due reminders every
// interval.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Println("Reminder service started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service stopped")
			return
		case <-ticker.C:
			s.DispatchDue(ctx)
		}
	}
}

// DispatchDue sends every reminder whose slot time has passed today and that
// has not been sent yet. Remote failure means no reminders this tick; the
// next tick retries.
func (s *ReminderService) DispatchDue(ctx context.Context) {
	profiles, err := s.remote.FetchReminderProfiles(ctx)
	if err != nil {
		log.Println("Error fetching reminder profiles:", err)
		return
	}

	now := s.now()
	clock := now.Format("15:04")
	date := now.Format("2006-01-02")

	var verse *models.VerseOfTheDay
	verseFetched := false

	for _, profile := range profiles {
		morningTime := profile.Preferences.Reminder_Time
		if morningTime == "" {
			morningTime = defaultMorningReminderTime
		}

		if profile.Preferences.Morning_Reminder && clock >= morningTime {
			if !verseFetched {
				verse, _ = s.remote.FetchVerseOfTheDay(ctx, date)
				verseFetched = true
			}
			s.dispatch(ctx, profile, "morning", date, verse)
		}
		if profile.Preferences.Evening_Reminder && clock >= s.eveningTime {
			if !verseFetched {
				verse, _ = s.remote.FetchVerseOfTheDay(ctx, date)
				verseFetched = true
			}
			s.dispatch(ctx, profile, "evening", date, verse)
		}
	}
}

func (s *ReminderService) dispatch(ctx context.Context, profile models.UserProfile, slot string, date string, verse *models.VerseOfTheDay) {
	debounceKey := fmt.Sprintf("reminder_sent:%s:%s:%s", profile.User_ID, slot, date)

	if _, sent, err := s.kv.Get(ctx, debounceKey); err != nil || sent {
		if err != nil {
			log.Println("Error checking reminder debounce:", err)
		}
		return
	}

	dispatchID := uuid.NewString()

	payload := NotificationPayload{
		Title: "Time for your morning prayer 🙏",
		Body:  "Start your day with a moment of prayer and reflection.",
		Data:  map[string]string{"type": "reminder", "slot": slot, "dispatchId": dispatchID},
	}
	if slot == "evening" {
		payload.Title = "Time for your evening prayer 🌙"
		payload.Body = "End your day with gratitude and peaceful prayer."
	}
	if verse != nil {
		payload.Body = fmt.Sprintf("%s — %s", verse.Verse, verse.Reference)
	}

	delivered := false
	if push := GetPushNotificationService(); push != nil {
		if err := push.SendToUser(ctx, &profile, payload); err != nil {
			log.Printf("Push reminder %s for user %s failed: %v", dispatchID, profile.User_ID, err)
		} else {
			delivered = true
		}
	}

	if email := GetEmailService(); email != nil && profile.Email != "" {
		if err := email.SendReminderEmail(profile.Email, profile.First_Name, slot, verse); err != nil {
			log.Printf("Email reminder %s for user %s failed: %v", dispatchID, profile.User_ID, err)
		} else {
			delivered = true
		}
	}

	if !delivered {
		return
	}

	if err := s.kv.Set(ctx, debounceKey, dispatchID); err != nil {
		log.Println("Error recording reminder debounce:", err)
	}
}
