package services

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"github.com/iPrayUST/initializers"
	"github.com/iPrayUST/models"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the Resend client used for the optional email
// reminder channel.
func InitEmailService() {
	apiKey := initializers.Cfg.Resend_API_Key

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email reminders will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized with Resend")
}

func GetEmailService() *EmailService {
	return emailService
}

// SendReminderEmail sends the daily reminder, carrying the verse of the day
// when one is available.
func (s *EmailService) SendReminderEmail(toEmail string, firstName string, slot string, verse *models.VerseOfTheDay) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	greeting := "Hello"
	if firstName != "" {
		greeting = fmt.Sprintf("Hello %s", firstName)
	}

	subject := "Your morning prayer reminder"
	lead := "Take a quiet moment to start your day with prayer."
	if slot == "evening" {
		subject = "Your evening prayer reminder"
		lead = "Wind down and end your day with a peaceful prayer."
	}

	verseBlock := ""
	if verse != nil {
		verseBlock = fmt.Sprintf(`
        <blockquote style="border-left: 3px solid #FF6B6B; margin: 16px 0; padding: 8px 16px; color: #555;">
            %s
            <br><em>%s</em>
        </blockquote>`, verse.Verse, verse.Reference)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="text-align: center; color: #FF6B6B;">iPrayUST</h2>
    <p>%s,</p>
    <p>%s</p>
    %s
    <p style="color: #888; font-size: 12px;">You are receiving this because reminders are enabled in your iPrayUST preferences.</p>
</body>
</html>`, greeting, lead, verseBlock)

	params := &resend.SendEmailRequest{
		From:    "iPrayUST <reminders@iprayust.app>",
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlBody,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send reminder email: %v", err)
	}
	return nil
}
