package services

import (
	"context"
	"testing"
	"time"

	"leadcapture/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRegistrations(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 30, 0, 0, time.Local)

	regRepo := &fakeRegistrationRepo{}
	rating := 4
	require.NoError(t, regRepo.Put(ctx, &domain.Registration{
		EventID:          "ev-1",
		IdentityKey:      "+915551111",
		PhoneNumber:      "5551111",
		Name:             "Asha",
		Email:            "asha@example.com",
		Location:         "Pune",
		SelectedProducts: []string{"Shampoo", "Serum"},
		Rating:           &rating,
		RegisteredAt:     base,
	}))
	require.NoError(t, regRepo.Put(ctx, &domain.Registration{
		EventID:          "ev-1",
		IdentityKey:      "+915552222",
		PhoneNumber:      "5552222",
		Name:             "Ravi",
		CustomerType:     "Distributor",
		Organization:     "Ravi Traders",
		SelectedProducts: []string{"Oil"},
		RegisteredAt:     base.Add(10 * time.Minute),
	}))

	svc := NewExportService(regRepo, testTimeout)
	rows, err := svc.ExportRegistrations(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].SrNo)
	assert.Equal(t, 2, rows[1].SrNo)
	assert.Equal(t, "Asha", rows[0].Name)
	assert.Equal(t, "Shampoo, Serum", rows[0].SelectedProducts)
	assert.Equal(t, "01/06/2025 10:30", rows[0].RegisteredAt)
	assert.Equal(t, "Distributor", rows[1].CustomerType)
	assert.Equal(t, "Ravi Traders", rows[1].Organization)
	assert.Empty(t, rows[1].Email)
}

func TestExportRegistrations_Empty(t *testing.T) {
	svc := NewExportService(&fakeRegistrationRepo{}, testTimeout)
	_, err := svc.ExportRegistrations(context.Background(), "ev-1")
	require.ErrorIs(t, err, domain.ErrNoRegistrations)
}
