package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/webinar-booking/internal/model"
)

type WebinarRepo struct{ DB *sql.DB }

func NewWebinarRepo(db *sql.DB) *WebinarRepo { return &WebinarRepo{DB: db} }

// Create inserts a webinar with a generated UUID and returns the stored
// record. The caller is responsible for validating the schedule and
// capacity beforehand.
func (r *WebinarRepo) Create(ctx context.Context, organizerID, title string, startsAt, endsAt time.Time, seats int) (model.Webinar, error) {
	w := model.Webinar{
		ID:          uuid.NewString(),
		OrganizerID: organizerID,
		Title:       title,
		StartsAt:    startsAt.UTC(),
		EndsAt:      endsAt.UTC(),
		Seats:       seats,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO webinars (id, organizer_id, title, starts_at, ends_at, seats, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		w.ID, w.OrganizerID, w.Title, w.StartsAt, w.EndsAt, w.Seats, w.CreatedAt)
	if err != nil {
		return model.Webinar{}, err
	}
	return w, nil
}

// FindByID fetches a webinar by id, reporting absence as (nil, nil).
func (r *WebinarRepo) FindByID(ctx context.Context, id string) (*model.Webinar, error) {
	var w model.Webinar
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, organizer_id, title, starts_at, ends_at, seats, created_at
		 FROM webinars WHERE id=? LIMIT 1`,
		id).Scan(&w.ID, &w.OrganizerID, &w.Title, &w.StartsAt, &w.EndsAt, &w.Seats, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListByOrganizer returns the webinars created by the given user,
// newest first.
func (r *WebinarRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]model.Webinar, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, organizer_id, title, starts_at, ends_at, seats, created_at
		 FROM webinars WHERE organizer_id=? ORDER BY created_at DESC`,
		organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	webinars := make([]model.Webinar, 0)
	for rows.Next() {
		var w model.Webinar
		if err := rows.Scan(&w.ID, &w.OrganizerID, &w.Title, &w.StartsAt, &w.EndsAt, &w.Seats, &w.CreatedAt); err != nil {
			return nil, err
		}
		webinars = append(webinars, w)
	}
	return webinars, rows.Err()
}
