package services

import (
	"context"
	"fmt"
	"log"

	"leadcapture/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRegistrationReceipt sends the registration receipt email using the
// "registration_receipt" template and the given data.
func (s *emailService) SendRegistrationReceipt(ctx context.Context, data *domain.RegistrationReceiptEmailData) error {
	if data == nil {
		return fmt.Errorf("registration receipt data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_receipt", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_receipt template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration receipt: %w", err)
	}
	log.Printf("[EMAIL] Registration receipt sent to %s", data.Email)
	return nil
}
