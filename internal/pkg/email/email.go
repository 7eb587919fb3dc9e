package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/teamstack/ems-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService dispatches notification mail. Callers treat every send as
// fire-and-forget: failures are logged here and never propagated into the
// write path that triggered them.
type EmailService interface {
	SendAnnouncement(to []string, title, content, priority string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type announcementEmailData struct {
	Title    string
	Content  string
	Priority string
	SentAt   string
}

// SendAnnouncement sends the announcement body to every recipient.
func (s *emailServiceImpl) SendAnnouncement(to []string, title, content, priority string) error {
	if len(to) == 0 {
		return nil
	}

	data := announcementEmailData{
		Title:    title,
		Content:  content,
		Priority: priority,
		SentAt:   time.Now().Format("2006-01-02 15:04"),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "announcement.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("[%s] %s", priority, title), body.String())
}

func (s *emailServiceImpl) sendHTML(to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "recipients", len(to), "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Email sent successfully", "recipients", len(to), "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"recipients", len(to),
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
