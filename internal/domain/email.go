package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationReceiptEmailData holds data for the registration receipt email
// sent when the registrant supplied an email address.
type RegistrationReceiptEmailData struct {
	Email     string
	Name      string
	EventName string
	Products  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationReceipt(ctx context.Context, data *RegistrationReceiptEmailData) error
}
