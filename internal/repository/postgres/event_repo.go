package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"leadcapture/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, name, start_time, end_time, product_list, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.StartTime, e.EndTime, pq.Array(e.ProductList), e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, start_time, end_time, product_list, qr_artifact_ref, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var qrNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.StartTime, &e.EndTime, pq.Array(&e.ProductList),
		&qrNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if qrNull.Valid {
		e.QRArtifactRef = qrNull.String
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, start_time, end_time, product_list, qr_artifact_ref, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e := &domain.Event{}
		var qrNull sql.NullString
		if err := rows.Scan(
			&e.ID, &e.Name, &e.StartTime, &e.EndTime, pq.Array(&e.ProductList),
			&qrNull, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if qrNull.Valid {
			e.QRArtifactRef = qrNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update replaces the mutable event fields wholesale. The QR artifact ref is
// deliberately excluded; AttachQRArtifact is the only writer for it.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, start_time = $3, end_time = $4, product_list = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.StartTime, e.EndTime, pq.Array(e.ProductList), e.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AttachQRArtifact is a merge-style partial write: it touches only the
// artifact reference and leaves every other field alone.
func (r *eventRepository) AttachQRArtifact(ctx context.Context, id, ref string) error {
	query := `UPDATE events SET qr_artifact_ref = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, ref)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the event record only. Child registrations are not cascaded;
// orphaning is accepted.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
