package domain

import (
	"context"
	"time"
)

// Registration is one attendee's (or walk-in lead's) record for an event,
// keyed by (EventID, IdentityKey). A resubmission under the same key fully
// replaces the previous record; last write wins.
// swagger:model Registration
type Registration struct {
	EventID          string    `json:"event_id"`
	IdentityKey      string    `json:"identity_key"`
	PhoneNumber      string    `json:"phone_number"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	Location         string    `json:"location,omitempty"`
	CustomerType     string    `json:"customer_type,omitempty"`
	Organization     string    `json:"organization,omitempty"`
	SelectedProducts []string  `json:"selected_products"`
	Rating           *int      `json:"rating,omitempty"`
	ImageBase64      string    `json:"image_base64,omitempty"`
	RegisteredAt     time.Time `json:"registered_at"`
}

// RegistrationForm is the submitted form before identity derivation and
// timestamp assignment. The public and assisted paths share this shape and
// differ only in which optional fields they require.
type RegistrationForm struct {
	Name             string
	PhoneNumber      string
	Email            string
	Location         string
	CustomerType     string
	Organization     string
	SelectedProducts []string
	Rating           *int
	ImageBase64      string
}

// DeliveryResult reports the outcome of the best-effort side effects that
// follow a successful registration write. It is a value, never an error:
// a failed delivery does not make the registration any less persisted.
type DeliveryResult struct {
	Attempted bool   `json:"attempted"`
	Delivered bool   `json:"delivered"`
	Detail    string `json:"detail,omitempty"`
}

// RegistrationRepository defines storage for registrations. Put is a full
// replace of whatever sits under (eventID, identityKey); there is no merge
// variant for registrations.
type RegistrationRepository interface {
	Put(ctx context.Context, reg *Registration) error
	GetByEventAndIdentity(ctx context.Context, eventID, identityKey string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// SubmitOutcome bundles the persisted registration with the notification
// and receipt outcomes surfaced to the caller as soft warnings.
type SubmitOutcome struct {
	Registration *Registration  `json:"registration"`
	Notification DeliveryResult `json:"notification"`
	EmailReceipt DeliveryResult `json:"email_receipt"`
}

// RegistrationService validates and persists registrations and triggers the
// detached notification side effects.
type RegistrationService interface {
	// SubmitRegistration handles the public self-registration path. The time
	// gate is authoritative here.
	SubmitRegistration(ctx context.Context, eventID string, form *RegistrationForm) (*SubmitOutcome, error)
	// SubmitAssistedRegistration handles the admin-assisted path, which may
	// bypass the time gate explicitly.
	SubmitAssistedRegistration(ctx context.Context, eventID string, form *RegistrationForm, bypassTimeGate bool) (*SubmitOutcome, error)
	ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
}
