package service

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentwheels-backend/internal/config"
	"rentwheels-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService returns a sendgrid-backed sender. With no API key it still
// returns a working service that drops every send with a warning.
func NewEmailService(cfg config.SendGridConfig) EmailService {
	if cfg.FromName == "" {
		cfg.FromName = "RentWheels"
	}
	return &emailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *emailService) SendBookingStatus(to, subject, body string) {
	if s.apiKey == "" || s.fromEmail == "" {
		logger.Warn("sendgrid not configured, dropping email", "to", to, "subject", subject)
		return
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("sendgrid rejected email", "to", to, "status", resp.StatusCode, "body", resp.Body)
		return
	}
	logger.Debug("email sent", "to", to, "subject", subject)
}
