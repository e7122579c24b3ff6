package domain

import "context"

// Fallback literals substituted into template parameters when a field is
// empty, so the provider never rejects the payload for a blank parameter.
const (
	FallbackRecipientName = "Guest"
	FallbackEventName     = "the event"
	FallbackProductList   = "None"
)

// NotificationRequest is the ephemeral payload for one outbound templated
// message. It is built from an accepted registration, dispatched once, and
// discarded regardless of outcome.
type NotificationRequest struct {
	Recipient    string
	TemplateName string
	LanguageCode string
	// Parameters is ordered: registrant name, event name, joined products.
	Parameters []string
}

// MessageSender is the port to the external messaging API. Implementations
// send a single templated message and report any non-success as an error.
type MessageSender interface {
	SendTemplate(ctx context.Context, req *NotificationRequest) error
}

// NotificationDispatcher formats and sends the post-registration message.
// Dispatch never returns an error: delivery faults come back as a failed
// DeliveryResult so callers cannot be interrupted by them.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, req *NotificationRequest) DeliveryResult
}
