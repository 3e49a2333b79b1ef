package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/faturo-inc/faturo/internal/shared/config"
)

// SMTPNotifier delivers subscription lifecycle emails over SMTP. The message
// body arrives already composed by the use case; we only wrap it in a minimal
// HTML template plus a plain-text alternative.
type SMTPNotifier struct {
	config config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPNotifier(cfg config.EmailConfig) *SMTPNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPNotifier{
		config: cfg,
		dialer: dialer,
	}
}

func (s *SMTPNotifier) Send(ctx context.Context, email, title, message string) error {
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>%s</h2>
			<p>%s</p>
		</body>
		</html>
	`, title, message)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", title)
	m.SetBody("text/plain", message)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
