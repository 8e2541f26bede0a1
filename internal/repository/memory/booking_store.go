package memory

import (
	"context"
	"sync"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/model"
)

// BookingStore keeps bookings in memory. A single mutex serializes
// Save against ListByWebinar, and Save re-checks the capacity and
// duplicate invariants before appending, mirroring the FOR UPDATE
// transaction of the MySQL repository. Capacity is looked up from the
// webinar store the bookings refer to.
type BookingStore struct {
	mu       sync.Mutex
	webinars *WebinarStore
	bookings []model.Booking
	// byWebinar indexes user IDs per webinar for the duplicate check.
	byWebinar map[string]map[string]struct{}
}

// NewBookingStore returns an empty in-memory booking store that
// enforces capacity against the given webinar store.
func NewBookingStore(webinars *WebinarStore) *BookingStore {
	return &BookingStore{
		webinars:  webinars,
		byWebinar: make(map[string]map[string]struct{}),
	}
}

// ListByWebinar returns a copy of all bookings recorded for the
// webinar, reflecting every completed Save.
func (s *BookingStore) ListByWebinar(_ context.Context, webinarID string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.bookings {
		if b.WebinarID == webinarID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Save appends a booking after re-validating the invariants under the
// store lock. It returns booking.ErrAlreadyParticipating when the
// (webinar, user) pair already exists and booking.ErrNoSeatsAvailable
// when the webinar has no free seats left.
func (s *BookingStore) Save(ctx context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.byWebinar[b.WebinarID]
	if _, dup := users[b.UserID]; dup {
		return booking.ErrAlreadyParticipating
	}

	w, err := s.webinars.FindByID(ctx, b.WebinarID)
	if err != nil {
		return err
	}
	if w == nil {
		return booking.ErrWebinarNotFound
	}
	if len(users) >= w.Seats {
		return booking.ErrNoSeatsAvailable
	}

	if users == nil {
		users = make(map[string]struct{})
		s.byWebinar[b.WebinarID] = users
	}
	users[b.UserID] = struct{}{}
	s.bookings = append(s.bookings, *b)
	return nil
}

// Count returns the number of bookings recorded for the webinar.
func (s *BookingStore) Count(webinarID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byWebinar[webinarID])
}
