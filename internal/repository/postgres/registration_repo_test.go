package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leadcapture/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Put(t *testing.T) {
	ctx := context.Background()
	registeredAt := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	rating := 4

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "insert",
			reg: &domain.Registration{
				EventID:          "ev-1",
				IdentityKey:      "+915551234",
				PhoneNumber:      "5551234",
				Name:             "Asha",
				Email:            "asha@example.com",
				Location:         "Pune",
				SelectedProducts: []string{"Shampoo"},
				RegisteredAt:     registeredAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WithArgs("ev-1", "+915551234", "5551234", "Asha", "asha@example.com", "Pune",
						"", "", pq.Array([]string{"Shampoo"}), sql.NullInt64{}, "", registeredAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "overwrite with rating",
			reg: &domain.Registration{
				EventID:          "ev-1",
				IdentityKey:      "+915551234",
				PhoneNumber:      "5551234",
				Name:             "Asha",
				SelectedProducts: []string{"Serum"},
				Rating:           &rating,
				RegisteredAt:     registeredAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`ON CONFLICT \(event_id, identity_key\) DO UPDATE SET`).
					WithArgs("ev-1", "+915551234", "5551234", "Asha", "", "",
						"", "", pq.Array([]string{"Serum"}), sql.NullInt64{Int64: 4, Valid: true}, "", registeredAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			reg: &domain.Registration{
				EventID:          "ev-1",
				IdentityKey:      "+915551234",
				SelectedProducts: []string{"Shampoo"},
				RegisteredAt:     registeredAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Put(ctx, tt.reg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

var registrationCols = []string{
	"event_id", "identity_key", "phone_number", "name", "email", "location",
	"customer_type", "organization", "selected_products", "rating", "image_base64", "registered_at",
}

func TestRegistrationRepository_GetByEventAndIdentity(t *testing.T) {
	ctx := context.Background()
	registeredAt := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT event_id, identity_key, phone_number, name`).
			WithArgs("ev-1", "+915551234").
			WillReturnRows(sqlmock.NewRows(registrationCols).
				AddRow("ev-1", "+915551234", "5551234", "Asha", "asha@example.com", "Pune",
					nil, nil, "{Shampoo,Serum}", 5, nil, registeredAt))

		repo := NewRegistrationRepository(db)
		got, err := repo.GetByEventAndIdentity(ctx, "ev-1", "+915551234")
		require.NoError(t, err)
		require.Equal(t, "Asha", got.Name)
		require.Equal(t, []string{"Shampoo", "Serum"}, got.SelectedProducts)
		require.NotNil(t, got.Rating)
		require.Equal(t, 5, *got.Rating)
		require.Empty(t, got.CustomerType)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT event_id, identity_key`).
			WithArgs("ev-1", "+919999999").
			WillReturnError(sql.ErrNoRows)

		repo := NewRegistrationRepository(db)
		_, err = repo.GetByEventAndIdentity(ctx, "ev-1", "+919999999")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegistrationRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	registeredAt := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT event_id, identity_key, phone_number, name`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(registrationCols).
			AddRow("ev-1", "+915551111", "5551111", "Asha", nil, nil, nil, nil, "{Shampoo}", nil, nil, registeredAt).
			AddRow("ev-1", "+915552222", "5552222", "Ravi", "ravi@example.com", "Mumbai",
				"Retail", "Ravi Salon", "{Serum,Oil}", 3, nil, registeredAt.Add(time.Minute)))

	repo := NewRegistrationRepository(db)
	regs, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, regs, 2)
	require.Equal(t, "Asha", regs[0].Name)
	require.Nil(t, regs[0].Rating)
	require.Equal(t, "Ravi Salon", regs[1].Organization)
	require.Equal(t, []string{"Serum", "Oil"}, regs[1].SelectedProducts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_CountByEventID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewRegistrationRepository(db)
	count, err := repo.CountByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 7, count)
}
