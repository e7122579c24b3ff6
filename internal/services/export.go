package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadcapture/internal/domain"
)

// exportTimeFormat renders registeredAt the way the admin views show it.
const exportTimeFormat = "02/01/2006 15:04"

// ExportRow is one flat row of the registration snapshot. SrNo is assigned at
// read time, 1-based, in store order; no ordering beyond that is guaranteed.
type ExportRow struct {
	SrNo             int    `json:"sr_no"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email,omitempty"`
	CustomerType     string `json:"customer_type,omitempty"`
	Organization     string `json:"organization,omitempty"`
	Location         string `json:"location,omitempty"`
	SelectedProducts string `json:"selected_products"`
	RegisteredAt     string `json:"registered_at"`
}

// ExportService snapshots an event's registrations into flat rows. Writing
// the spreadsheet file is the consumer's responsibility.
type ExportService interface {
	ExportRegistrations(ctx context.Context, eventID string) ([]ExportRow, error)
}

type exportService struct {
	registrationRepo domain.RegistrationRepository
	contextTimeout   time.Duration
}

func NewExportService(registrationRepo domain.RegistrationRepository, timeout time.Duration) ExportService {
	return &exportService{
		registrationRepo: registrationRepo,
		contextTimeout:   timeout,
	}
}

func (s *exportService) ExportRegistrations(ctx context.Context, eventID string) ([]ExportRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return nil, domain.ErrNoRegistrations
	}

	rows := make([]ExportRow, 0, len(regs))
	for i, reg := range regs {
		rows = append(rows, ExportRow{
			SrNo:             i + 1,
			Name:             reg.Name,
			PhoneNumber:      reg.PhoneNumber,
			Email:            reg.Email,
			CustomerType:     reg.CustomerType,
			Organization:     reg.Organization,
			Location:         reg.Location,
			SelectedProducts: strings.Join(reg.SelectedProducts, ", "),
			RegisteredAt:     reg.RegisteredAt.Local().Format(exportTimeFormat),
		})
	}
	return rows, nil
}
