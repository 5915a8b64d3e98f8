package services

import (
	"fmt"
	"html"
	"strconv"

	"fileshare-api/internal/utils"

	"github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/gomail.v2"
)

// EmailService sends share-notification mail over SMTP.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService builds the SMTP sender from environment settings.
func NewEmailService() *EmailService {
	port, err := strconv.Atoi(config.GetEnv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	return &EmailService{
		dialer: gomail.NewDialer(
			config.GetEnv("SMTP_HOST"),
			port,
			config.GetEnv("SMTP_USER"),
			config.GetEnv("SMTP_PASS"),
		),
		from: config.GetEnv("EMAIL_FROM"),
	}
}

// SendShareNotification mails a download link for a shared file.
func (s *EmailService) SendShareNotification(to, fromUser, fileName, shareURL string, sizeBytes int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s shared a file with you: %s", fromUser, fileName))
	m.SetBody("text/html", shareEmailBody(fromUser, fileName, shareURL, sizeBytes))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send share email: %w", err)
	}
	return nil
}

func shareEmailBody(fromUser, fileName, shareURL string, sizeBytes int64) string {
	fromUser = html.EscapeString(fromUser)
	fileName = html.EscapeString(fileName)
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>A file was shared with you</h2>
  <p><strong>%s</strong> shared a file with you.</p>
  <p><strong>%s</strong> (%s)</p>
  <p><a href="%s">Download the file</a></p>
  <p style="color: #666; font-size: 13px;">The link expires 30 days after upload. If you did not expect this file, contact the sender directly.</p>
</body>
</html>`, fromUser, fileName, utils.FormatFileSize(sizeBytes), shareURL)
}
