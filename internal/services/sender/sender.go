// Package services содержит логику отправки приветственных писем новым подписчикам.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	smtplib "github.com/tiendacafe/subscription-service/internal/lib/smtp"
	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/models"
)

// SenderService отправляет письма подписчикам через SMTP транспорт.
type SenderService struct {
	transport smtplib.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtplib.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendWelcomeEmail обрабатывает событие о новой подписке из очереди
// и отправляет приветственное письмо.
func (s *SenderService) SendWelcomeEmail(body []byte) error {
	var message models.WelcomeMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "¡Bienvenido a la Tienda de Café!"
	bodyText := fmt.Sprintf("¡Hola, %s!\n\nGracias por suscribirte a nuestro boletín.\nTe avisaremos de las novedades y promociones de la tienda.",
		message.Nombre)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.log.Error("failed to close SMTP client", sl.Err(closeErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("to", addr), sl.Err(err))
			return err
		}
	}

	writer, err := client.Data()
	if err != nil {
		s.log.Error("failed to open DATA writer", sl.Err(err))
		return err
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message body", sl.Err(err))
		return err
	}
	if err := writer.Close(); err != nil {
		s.log.Error("failed to close DATA writer", sl.Err(err))
		return err
	}

	s.log.Info("welcome email sent", slog.String("to", strings.Join(to, ";")))
	return nil
}
