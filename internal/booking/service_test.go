package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/model"
	"github.com/iliyamo/webinar-booking/internal/repository/memory"
)

type testEnv struct {
	users    *memory.UserStore
	webinars *memory.WebinarStore
	bookings *memory.BookingStore
	notifier *memory.Notifier
	svc      *booking.Service
}

func newTestEnv() *testEnv {
	users := memory.NewUserStore()
	webinars := memory.NewWebinarStore()
	bookings := memory.NewBookingStore(webinars)
	notifier := memory.NewNotifier()
	return &testEnv{
		users:    users,
		webinars: webinars,
		bookings: bookings,
		notifier: notifier,
		svc:      booking.NewService(users, webinars, bookings, notifier),
	}
}

func (e *testEnv) addUser(id, email string) model.UserRef {
	e.users.Add(model.User{ID: id, Email: email, CreatedAt: time.Now().UTC()})
	return model.UserRef{ID: id, Email: email}
}

func (e *testEnv) addWebinar(id, organizerID, title string, seats int) {
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	e.webinars.Add(model.Webinar{
		ID:          id,
		OrganizerID: organizerID,
		Title:       title,
		StartsAt:    start,
		EndsAt:      start.Add(time.Hour),
		Seats:       seats,
		CreatedAt:   time.Now().UTC(),
	})
}

func TestBookSeat_HappyPath(t *testing.T) {
	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	participant := env.addUser("participant-1", "participant1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 15)

	err := env.svc.BookSeat(context.Background(), "webinar-1", participant)
	require.NoError(t, err)

	// Exactly one booking with matching identifiers.
	recorded, err := env.bookings.ListByWebinar(context.Background(), "webinar-1")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "participant-1", recorded[0].UserID)
	assert.Equal(t, "webinar-1", recorded[0].WebinarID)
	assert.NotEmpty(t, recorded[0].ID)

	// Exactly one notification, addressed to the organizer.
	sent := env.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "organizer-1", sent[0].To)
	assert.Equal(t, "New participant registered", sent[0].Subject)
	assert.Equal(t, "User participant1@example.com has registered for your webinar: Webinar title.", sent[0].Body)
}

func TestBookSeat_UserNotFound(t *testing.T) {
	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 15)

	ghost := model.UserRef{ID: "user-404", Email: "user404@example.com"}
	err := env.svc.BookSeat(context.Background(), "webinar-1", ghost)
	require.ErrorIs(t, err, booking.ErrUserNotFound)

	assert.Equal(t, 0, env.bookings.Count("webinar-1"))
	assert.Empty(t, env.notifier.Sent())
}

func TestBookSeat_WebinarNotFound(t *testing.T) {
	env := newTestEnv()
	participant := env.addUser("participant-1", "participant1@example.com")

	err := env.svc.BookSeat(context.Background(), "webinar-404", participant)
	require.ErrorIs(t, err, booking.ErrWebinarNotFound)

	assert.Equal(t, 0, env.bookings.Count("webinar-404"))
	assert.Empty(t, env.notifier.Sent())
}

func TestBookSeat_ExistenceCheckedBeforeCapacity(t *testing.T) {
	// A malformed user reference must never surface as a capacity
	// error, even against a full webinar.
	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 1)
	filler := env.addUser("filler", "filler@example.com")
	require.NoError(t, env.svc.BookSeat(context.Background(), "webinar-1", filler))

	ghost := model.UserRef{ID: "user-404", Email: "user404@example.com"}
	err := env.svc.BookSeat(context.Background(), "webinar-1", ghost)
	require.ErrorIs(t, err, booking.ErrUserNotFound)
}

func TestBookSeat_AlreadyParticipating(t *testing.T) {
	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	participant := env.addUser("participant-1", "participant1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 15)

	require.NoError(t, env.svc.BookSeat(context.Background(), "webinar-1", participant))

	err := env.svc.BookSeat(context.Background(), "webinar-1", participant)
	require.ErrorIs(t, err, booking.ErrAlreadyParticipating)

	// The second attempt must not change the store or notify again.
	assert.Equal(t, 1, env.bookings.Count("webinar-1"))
	assert.Len(t, env.notifier.Sent(), 1)
}

func TestBookSeat_NoSeatsAvailable(t *testing.T) {
	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 15)

	for i := 1; i <= 15; i++ {
		u := env.addUser(fmt.Sprintf("participant-%d", i), fmt.Sprintf("participant%d@example.com", i))
		require.NoError(t, env.svc.BookSeat(context.Background(), "webinar-1", u))
	}
	assert.Equal(t, 15, env.bookings.Count("webinar-1"))

	late := env.addUser("participant-16", "participant16@example.com")
	err := env.svc.BookSeat(context.Background(), "webinar-1", late)
	require.ErrorIs(t, err, booking.ErrNoSeatsAvailable)
	assert.Equal(t, 15, env.bookings.Count("webinar-1"))
}

func TestBookSeat_NotifierFailureKeepsBooking(t *testing.T) {
	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	participant := env.addUser("participant-1", "participant1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 15)

	broken := errors.New("broker unreachable")
	env.notifier.FailWith(broken)

	err := env.svc.BookSeat(context.Background(), "webinar-1", participant)
	require.ErrorIs(t, err, broken)

	// The booking was persisted before the notifier ran and stands.
	assert.Equal(t, 1, env.bookings.Count("webinar-1"))
}

func TestBookSeat_ConcurrentAttemptsNeverOversell(t *testing.T) {
	const seats = 10
	const attempts = 60

	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", seats)

	refs := make([]model.UserRef, attempts)
	for i := range refs {
		refs[i] = env.addUser(fmt.Sprintf("participant-%d", i), fmt.Sprintf("participant%d@example.com", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.svc.BookSeat(context.Background(), "webinar-1", refs[i])
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, booking.ErrNoSeatsAvailable)
	}
	assert.Equal(t, seats, successes)
	assert.Equal(t, seats, env.bookings.Count("webinar-1"))
}

func TestBookSeat_ConcurrentDuplicateAttempts(t *testing.T) {
	const attempts = 20

	env := newTestEnv()
	env.addUser("organizer-1", "organizer1@example.com")
	participant := env.addUser("participant-1", "participant1@example.com")
	env.addWebinar("webinar-1", "organizer-1", "Webinar title", 15)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.svc.BookSeat(context.Background(), "webinar-1", participant)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, env.bookings.Count("webinar-1"))
}
