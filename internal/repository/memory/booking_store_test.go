package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/model"
)

func testWebinarStore(seats int) *WebinarStore {
	ws := NewWebinarStore()
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	ws.Add(model.Webinar{
		ID:          "w1",
		OrganizerID: "o1",
		Title:       "t",
		StartsAt:    start,
		EndsAt:      start.Add(time.Hour),
		Seats:       seats,
	})
	return ws
}

func TestBookingStore_ReadYourWrites(t *testing.T) {
	s := NewBookingStore(testWebinarStore(5))
	ctx := context.Background()

	b := model.Booking{ID: "b1", WebinarID: "w1", UserID: "u1", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Save(ctx, &b))

	listed, err := s.ListByWebinar(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, b, listed[0])
}

func TestBookingStore_RejectsDuplicatePair(t *testing.T) {
	s := NewBookingStore(testWebinarStore(5))
	ctx := context.Background()

	first := model.Booking{ID: "b1", WebinarID: "w1", UserID: "u1", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Save(ctx, &first))

	second := model.Booking{ID: "b2", WebinarID: "w1", UserID: "u1", CreatedAt: time.Now().UTC()}
	err := s.Save(ctx, &second)
	require.ErrorIs(t, err, booking.ErrAlreadyParticipating)
	assert.Equal(t, 1, s.Count("w1"))
}

func TestBookingStore_RejectsUnknownWebinar(t *testing.T) {
	s := NewBookingStore(NewWebinarStore())
	b := model.Booking{ID: "b1", WebinarID: "missing", UserID: "u1", CreatedAt: time.Now().UTC()}
	err := s.Save(context.Background(), &b)
	require.ErrorIs(t, err, booking.ErrWebinarNotFound)
}

func TestBookingStore_EnforcesCapacityUnderConcurrency(t *testing.T) {
	const seats = 3
	const writers = 40

	s := NewBookingStore(testWebinarStore(seats))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := model.Booking{
				ID:        fmt.Sprintf("b%d", i),
				WebinarID: "w1",
				UserID:    fmt.Sprintf("u%d", i),
				CreatedAt: time.Now().UTC(),
			}
			errs[i] = s.Save(ctx, &b)
		}(i)
	}
	wg.Wait()

	saved := 0
	for _, err := range errs {
		if err == nil {
			saved++
		} else {
			require.ErrorIs(t, err, booking.ErrNoSeatsAvailable)
		}
	}
	assert.Equal(t, seats, saved)
	assert.Equal(t, seats, s.Count("w1"))
}
