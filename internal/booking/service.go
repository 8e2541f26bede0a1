package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/webinar-booking/internal/model"
)

// UserStore looks up users by identifier. A nil user with a nil error
// means the user does not exist.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// WebinarStore looks up webinars by identifier. A nil webinar with a
// nil error means the webinar does not exist.
type WebinarStore interface {
	FindByID(ctx context.Context, id string) (*model.Webinar, error)
}

// BookingStore persists bookings. ListByWebinar must reflect every
// previously completed Save so the capacity and duplicate checks below
// operate on a current view. Save is the serialization point under
// concurrency: implementations must reject a write that would exceed
// the webinar's capacity (ErrNoSeatsAvailable) or duplicate a
// (webinar, user) pair (ErrAlreadyParticipating), even when the
// service's own checks raced against a concurrent attempt.
type BookingStore interface {
	ListByWebinar(ctx context.Context, webinarID string) ([]model.Booking, error)
	Save(ctx context.Context, b *model.Booking) error
}

// Notifier delivers a message to an organizer. The booking service
// calls it at most once per successful booking, after the booking has
// been persisted.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service executes a single booking request end-to-end, enforcing all
// invariants before any state mutation and notifying the organizer only
// after a successful mutation. It holds no state of its own; all shared
// state lives in the stores.
type Service struct {
	users    UserStore
	webinars WebinarStore
	bookings BookingStore
	notifier Notifier
}

// NewService constructs a booking Service with its collaborators. All
// dependencies must be non-nil.
func NewService(users UserStore, webinars WebinarStore, bookings BookingStore, notifier Notifier) *Service {
	if users == nil || webinars == nil || bookings == nil || notifier == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{users: users, webinars: webinars, bookings: bookings, notifier: notifier}
}

// BookSeat books a seat on the webinar for the given user. The checks
// run in a strict order so that a malformed reference never masks as a
// capacity error, and a user who is already booked gets
// ErrAlreadyParticipating rather than a misleading ErrNoSeatsAvailable
// when capacity also happens to be exhausted. No store write happens on
// any failure path.
//
// If persisting the booking succeeds but the organizer notification
// fails, the booking stands and the notification error is returned to
// the caller. Retrying or compensating is the caller's decision.
func (s *Service) BookSeat(ctx context.Context, webinarID string, user model.UserRef) error {
	if webinarID == "" {
		return ErrWebinarNotFound
	}

	// The passed user is the caller's claimed identity, not proof of
	// existence; look it up before anything else.
	existing, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if existing == nil {
		return ErrUserNotFound
	}

	webinar, err := s.webinars.FindByID(ctx, webinarID)
	if err != nil {
		return fmt.Errorf("find webinar: %w", err)
	}
	if webinar == nil {
		return ErrWebinarNotFound
	}

	// Capacity and duplicate checks must read the same listing, so a
	// single ListByWebinar feeds both.
	participations, err := s.bookings.ListByWebinar(ctx, webinarID)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}
	if webinar.Seats-len(participations) <= 0 {
		return ErrNoSeatsAvailable
	}
	for _, p := range participations {
		if p.UserID == user.ID {
			return ErrAlreadyParticipating
		}
	}

	b := &model.Booking{
		ID:        uuid.NewString(),
		WebinarID: webinarID,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	// Save re-checks both invariants under the store's serialization,
	// so two attempts racing past the reads above cannot both land.
	if err := s.bookings.Save(ctx, b); err != nil {
		return err
	}

	body := fmt.Sprintf("User %s has registered for your webinar: %s.", existing.Email, webinar.Title)
	if err := s.notifier.Send(ctx, webinar.OrganizerID, "New participant registered", body); err != nil {
		// The booking is already durable; surface the failure without
		// undoing the write.
		return fmt.Errorf("notify organizer: %w", err)
	}
	return nil
}
