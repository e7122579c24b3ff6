package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"leadcapture/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Put upserts the registration under (event_id, identity_key). On conflict
// every column is replaced, never merged: a resubmission under the same
// identity fully overwrites the earlier record, including registered_at.
func (r *registrationRepository) Put(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (
			event_id, identity_key, phone_number, name, email, location,
			customer_type, organization, selected_products, rating, image_base64, registered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (event_id, identity_key) DO UPDATE SET
			phone_number = EXCLUDED.phone_number,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			location = EXCLUDED.location,
			customer_type = EXCLUDED.customer_type,
			organization = EXCLUDED.organization,
			selected_products = EXCLUDED.selected_products,
			rating = EXCLUDED.rating,
			image_base64 = EXCLUDED.image_base64,
			registered_at = EXCLUDED.registered_at
	`
	var rating sql.NullInt64
	if reg.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*reg.Rating), Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		reg.EventID, reg.IdentityKey, reg.PhoneNumber, reg.Name, reg.Email, reg.Location,
		reg.CustomerType, reg.Organization, pq.Array(reg.SelectedProducts), rating,
		reg.ImageBase64, reg.RegisteredAt,
	)
	return err
}

func (r *registrationRepository) GetByEventAndIdentity(ctx context.Context, eventID, identityKey string) (*domain.Registration, error) {
	query := `
		SELECT event_id, identity_key, phone_number, name, email, location,
		       customer_type, organization, selected_products, rating, image_base64, registered_at
		FROM registrations
		WHERE event_id = $1 AND identity_key = $2
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, identityKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `
		SELECT event_id, identity_key, phone_number, name, email, location,
		       customer_type, organization, selected_products, rating, image_base64, registered_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var email, location, customerType, organization, imageBase64 sql.NullString
	var rating sql.NullInt64
	err := row.Scan(
		&reg.EventID, &reg.IdentityKey, &reg.PhoneNumber, &reg.Name, &email, &location,
		&customerType, &organization, pq.Array(&reg.SelectedProducts), &rating,
		&imageBase64, &reg.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	reg.Email = email.String
	reg.Location = location.String
	reg.CustomerType = customerType.String
	reg.Organization = organization.String
	reg.ImageBase64 = imageBase64.String
	if rating.Valid {
		v := int(rating.Int64)
		reg.Rating = &v
	}
	return reg, nil
}
