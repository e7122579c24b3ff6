package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"leadcapture/internal/domain"
)

type registrationService struct {
	eventRepo          domain.EventRepository
	registrationRepo   domain.RegistrationRepository
	dispatcher         domain.NotificationDispatcher
	emailService       domain.EmailService
	defaultCountryCode string
	logger             *slog.Logger
	contextTimeout     time.Duration
}

func NewRegistrationService(eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	dispatcher domain.NotificationDispatcher,
	emailService domain.EmailService,
	defaultCountryCode string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:          eventRepo,
		registrationRepo:   registrationRepo,
		dispatcher:         dispatcher,
		emailService:       emailService,
		defaultCountryCode: defaultCountryCode,
		logger:             logger,
		contextTimeout:     timeout,
	}
}

func (s *registrationService) SubmitRegistration(ctx context.Context, eventID string, form *domain.RegistrationForm) (*domain.SubmitOutcome, error) {
	// The public form also requires email and location; the assisted path
	// treats them as optional.
	return s.submit(ctx, eventID, form, false, true)
}

func (s *registrationService) SubmitAssistedRegistration(ctx context.Context, eventID string, form *domain.RegistrationForm, bypassTimeGate bool) (*domain.SubmitOutcome, error) {
	return s.submit(ctx, eventID, form, bypassTimeGate, false)
}

func (s *registrationService) submit(ctx context.Context, eventID string, form *domain.RegistrationForm, bypassTimeGate, requireContact bool) (*domain.SubmitOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// The gate is authoritative server-side; client-side disabling of the
	// form is not trusted. Only the assisted path may bypass it, explicitly.
	if !bypassTimeGate && !event.IsRegistrationOpen(time.Now()) {
		return nil, domain.ErrRegistrationClosed
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}
	if requireContact && (strings.TrimSpace(form.Email) == "" || strings.TrimSpace(form.Location) == "") {
		return nil, domain.ErrInvalidInput
	}

	identityKey, err := domain.CanonicalIdentityKey(form.PhoneNumber, s.defaultCountryCode)
	if err != nil {
		return nil, err
	}

	reg := &domain.Registration{
		EventID:          eventID,
		IdentityKey:      identityKey,
		PhoneNumber:      strings.TrimSpace(form.PhoneNumber),
		Name:             strings.TrimSpace(form.Name),
		Email:            strings.TrimSpace(form.Email),
		Location:         strings.TrimSpace(form.Location),
		CustomerType:     strings.TrimSpace(form.CustomerType),
		Organization:     strings.TrimSpace(form.Organization),
		SelectedProducts: form.SelectedProducts,
		Rating:           form.Rating,
		ImageBase64:      form.ImageBase64,
		RegisteredAt:     time.Now(),
	}

	// Full replace under (eventID, identityKey): a resubmission from the same
	// identity overwrites the earlier record. Last write wins.
	if err := s.registrationRepo.Put(ctx, reg); err != nil {
		return nil, fmt.Errorf("put registration: %w", err)
	}

	outcome := &domain.SubmitOutcome{Registration: reg}

	// The registration is complete at this point. Everything below is
	// best-effort and must not unwind the write.
	req := &domain.NotificationRequest{
		Recipient:  identityKey,
		Parameters: []string{reg.Name, event.Name, strings.Join(reg.SelectedProducts, ", ")},
	}
	outcome.Notification = s.dispatcher.Dispatch(ctx, req)
	if outcome.Notification.Attempted && !outcome.Notification.Delivered {
		s.logger.Warn("registration stored but notification delivery failed",
			"event_id", eventID, "identity", identityKey, "detail", outcome.Notification.Detail)
	}

	if reg.Email != "" {
		outcome.EmailReceipt.Attempted = true
		data := &domain.RegistrationReceiptEmailData{
			Email:     reg.Email,
			Name:      reg.Name,
			EventName: event.Name,
			Products:  strings.Join(reg.SelectedProducts, ", "),
		}
		if err := s.emailService.SendRegistrationReceipt(ctx, data); err != nil {
			outcome.EmailReceipt.Detail = err.Error()
			s.logger.Warn("registration stored but receipt email failed",
				"event_id", eventID, "identity", identityKey, "err", err)
		} else {
			outcome.EmailReceipt.Delivered = true
		}
	}

	return outcome, nil
}

func validateForm(form *domain.RegistrationForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		return domain.ErrInvalidInput
	}
	if len(form.SelectedProducts) == 0 {
		return domain.ErrInvalidInput
	}
	if form.Rating != nil && (*form.Rating < 1 || *form.Rating > 5) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *registrationService) ListRegistrations(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}
