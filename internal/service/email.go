package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// SendRecapReadyEmail tells a golfer that their monthly recap is available.
// monthName is the human form, e.g. "March 2026".
func (s *EmailService) SendRecapReadyEmail(email, name, month, monthName string) error {
	recapURL := fmt.Sprintf("%s/recap/%s", s.appURL, month)
	subject, body := recapReadyEmailTemplate(name, monthName, recapURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "recap_ready", "to", email, "subject", subject, "url", recapURL)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "recap_ready", "to", email)
	}
	return err
}

// SendWelcomeEmail greets a new account. Best-effort, callers ignore failures.
func (s *EmailService) SendWelcomeEmail(email, name string) error {
	dashboardURL := fmt.Sprintf("%s/dashboard", s.appURL)
	subject, body := welcomeEmailTemplate(name, dashboardURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "welcome", "to", email, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "welcome", "to", email)
	}
	return err
}
