package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/model"
)

// BookingRepo persists bookings in the `bookings` table, which carries
// a UNIQUE KEY on (webinar_id, user_id).
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// ListByWebinar returns all bookings recorded for the webinar, oldest
// first.
func (r *BookingRepo) ListByWebinar(ctx context.Context, webinarID string) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, webinar_id, user_id, created_at
		 FROM bookings WHERE webinar_id=? ORDER BY created_at ASC`,
		webinarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.WebinarID, &b.UserID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Save records a booking inside a transaction that serializes
// concurrent attempts on the same webinar.
//
// Two callers that both listed the same bookings snapshot can race each
// other to the insert; without serialization both would observe free
// capacity and the webinar would oversell. Locking the webinar row with
// SELECT ... FOR UPDATE makes the count-then-insert sequence atomic per
// webinar: the second transaction blocks until the first commits and
// then sees its insert. The unique key on (webinar_id, user_id) backs
// the duplicate check the same way.
//
// Save returns booking.ErrNoSeatsAvailable or
// booking.ErrAlreadyParticipating when the re-checked invariants would
// be violated, and booking.ErrWebinarNotFound when the webinar row is
// gone.
func (r *BookingRepo) Save(ctx context.Context, b *model.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Exclusive row lock on the webinar; concurrent Saves for the same
	// webinar queue up here.
	var seats int
	err = tx.QueryRowContext(ctx,
		"SELECT seats FROM webinars WHERE id=? FOR UPDATE", b.WebinarID).Scan(&seats)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrWebinarNotFound
	}
	if err != nil {
		return err
	}

	var taken int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE webinar_id=?", b.WebinarID).Scan(&taken); err != nil {
		return err
	}
	if taken >= seats {
		return booking.ErrNoSeatsAvailable
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bookings (id, webinar_id, user_id, created_at) VALUES (?,?,?,?)",
		b.ID, b.WebinarID, b.UserID, b.CreatedAt)
	if err != nil {
		// 1062 = duplicate entry on the (webinar_id, user_id) key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return booking.ErrAlreadyParticipating
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
