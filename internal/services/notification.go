package services

import (
	"context"
	"log/slog"

	"leadcapture/internal/domain"
)

type notificationDispatcher struct {
	sender       domain.MessageSender
	templateName string
	languageCode string
	logger       *slog.Logger
}

// NewNotificationDispatcher returns a dispatcher that sends one templated
// message per request through the given sender. Single attempt, no retry, no
// persisted outbox.
func NewNotificationDispatcher(sender domain.MessageSender, templateName, languageCode string, logger *slog.Logger) domain.NotificationDispatcher {
	return &notificationDispatcher{
		sender:       sender,
		templateName: templateName,
		languageCode: languageCode,
		logger:       logger,
	}
}

func (d *notificationDispatcher) Dispatch(ctx context.Context, req *domain.NotificationRequest) domain.DeliveryResult {
	result := domain.DeliveryResult{Attempted: true}
	if req.Recipient == "" {
		result.Detail = "missing recipient"
		return result
	}

	out := &domain.NotificationRequest{
		Recipient:    req.Recipient,
		TemplateName: d.templateName,
		LanguageCode: d.languageCode,
		Parameters:   withFallbacks(req.Parameters),
	}
	if err := d.sender.SendTemplate(ctx, out); err != nil {
		// Delivery faults stay inside the result value; the caller's
		// registration must not be interrupted by them.
		d.logger.Warn("notification delivery failed", "recipient", req.Recipient, "err", err)
		result.Detail = err.Error()
		return result
	}
	result.Delivered = true
	return result
}

// withFallbacks maps the ordered parameter list [name, eventName, products]
// onto the template, substituting a literal wherever a field came in empty.
func withFallbacks(params []string) []string {
	fallbacks := []string{domain.FallbackRecipientName, domain.FallbackEventName, domain.FallbackProductList}
	out := make([]string, len(fallbacks))
	for i := range fallbacks {
		if i < len(params) && params[i] != "" {
			out[i] = params[i]
		} else {
			out[i] = fallbacks[i]
		}
	}
	return out
}
