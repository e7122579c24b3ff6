package domain

import (
	"context"
	"strings"
	"time"
)

// Event represents a time-boxed lead-capture event with a product catalog.
// swagger:model Event
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ProductList   []string  `json:"product_list"`
	QRArtifactRef string    `json:"qr_artifact_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is minted by the
// service before the first write so the public link can be derived from it.
func NewEvent(name string, startTime, endTime time.Time, productList []string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		StartTime:   startTime,
		EndTime:     endTime,
		ProductList: productList,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Validate checks the invariants required at create and update time.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrInvalidInput
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return ErrInvalidInput
	}
	if !e.StartTime.Before(e.EndTime) {
		return ErrInvalidInput
	}
	if len(e.ProductList) == 0 {
		return ErrInvalidInput
	}
	for _, p := range e.ProductList {
		if strings.TrimSpace(p) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// IsRegistrationOpen reports whether the time gate admits a registration at
// now. The boundary now == EndTime is closed.
func (e *Event) IsRegistrationOpen(now time.Time) bool {
	return now.Before(e.EndTime)
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Name        *string
	StartTime   *time.Time
	EndTime     *time.Time
	ProductList []string
}

// EventRepository defines the interface for event storage. Put semantics:
// Create and Update replace whole fields; AttachQRArtifact is the one
// merge-style partial write, touching only the artifact reference.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	AttachQRArtifact(ctx context.Context, id, ref string) error
	Delete(ctx context.Context, id string) error
}

// PublicEvent is the payload rendered on the public registration form.
type PublicEvent struct {
	Event            *Event `json:"event"`
	RegisteredCount  int    `json:"registered_count"`
	RegistrationOpen bool   `json:"registration_open"`
}

// EventService defines the event lifecycle operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	GetPublicEvent(ctx context.Context, id string) (*PublicEvent, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
