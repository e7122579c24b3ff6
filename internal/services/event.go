package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"leadcapture/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	qrGenerator      domain.QRGenerator
	artifactStore    domain.ArtifactStore
	publicBaseURL    string
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	qrGenerator domain.QRGenerator,
	artifactStore domain.ArtifactStore,
	publicBaseURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		qrGenerator:      qrGenerator,
		artifactStore:    artifactStore,
		publicBaseURL:    publicBaseURL,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := event.Validate(); err != nil {
		return err
	}

	// The ID is minted before the first write so the public registration link
	// (and the QR encoding it) can be derived from it.
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	// Best effort: a failure here leaves the event usable without a QR image.
	s.attachQRArtifact(ctx, event)
	return nil
}

func (s *eventService) attachQRArtifact(ctx context.Context, event *domain.Event) {
	link := fmt.Sprintf("%s/events/%s", s.publicBaseURL, event.ID)
	img, err := s.qrGenerator.Generate(ctx, link)
	if err != nil {
		s.logger.Warn("qr generation failed, event created without artifact", "event_id", event.ID, "err", err)
		return
	}
	ref, err := s.artifactStore.Store(ctx, "qrcodes/"+event.ID+".png", img, "image/png")
	if err != nil {
		s.logger.Warn("qr artifact upload failed, event created without artifact", "event_id", event.ID, "err", err)
		return
	}
	if err := s.eventRepo.AttachQRArtifact(ctx, event.ID, ref); err != nil {
		s.logger.Warn("qr artifact attach failed, event created without artifact", "event_id", event.ID, "err", err)
		return
	}
	event.QRArtifactRef = ref
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetPublicEvent(ctx context.Context, id string) (*domain.PublicEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	count, err := s.registrationRepo.CountByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return &domain.PublicEvent{
		Event:            event,
		RegisteredCount:  count,
		RegistrationOpen: event.IsRegistrationOpen(time.Now()),
	}, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if update.Name != nil {
		event.Name = *update.Name
	}
	if update.StartTime != nil {
		event.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		event.EndTime = *update.EndTime
	}
	if update.ProductList != nil {
		event.ProductList = update.ProductList
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes the event record only. Registrations under the event
// are left in place; orphaning is accepted.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
