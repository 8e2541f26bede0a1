package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/model"
	"github.com/iliyamo/webinar-booking/internal/repository/memory"
)

type bookingFixture struct {
	users    *memory.UserStore
	webinars *memory.WebinarStore
	bookings *memory.BookingStore
	handler  *BookingHandler
}

func newBookingFixture() *bookingFixture {
	users := memory.NewUserStore()
	webinars := memory.NewWebinarStore()
	bookings := memory.NewBookingStore(webinars)
	svc := booking.NewService(users, webinars, bookings, memory.NewNotifier())
	return &bookingFixture{
		users:    users,
		webinars: webinars,
		bookings: bookings,
		handler:  NewBookingHandler(svc),
	}
}

// bookRequest fakes what the JWT middleware provides: an Echo context
// carrying the caller's id and email plus the webinar path param.
func bookRequest(t *testing.T, f *bookingFixture, webinarID, userID, email string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/webinars/"+webinarID+"/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(webinarID)
	c.Set("user_id", userID)
	c.Set("email", email)
	require.NoError(t, f.handler.Book(c))
	return rec
}

func seed(f *bookingFixture, seats int) {
	f.users.Add(model.User{ID: "o1", Email: "o1@example.com"})
	f.users.Add(model.User{ID: "p1", Email: "p1@example.com"})
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	f.webinars.Add(model.Webinar{
		ID: "w1", OrganizerID: "o1", Title: "Webinar title",
		StartsAt: start, EndsAt: start.Add(time.Hour), Seats: seats,
	})
}

func TestBook_Created(t *testing.T) {
	f := newBookingFixture()
	seed(f, 15)

	rec := bookRequest(t, f, "w1", "p1", "p1@example.com")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, f.bookings.Count("w1"))
}

func TestBook_UnknownUserIsUnauthorized(t *testing.T) {
	f := newBookingFixture()
	seed(f, 15)

	rec := bookRequest(t, f, "w1", "ghost", "ghost@example.com")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, f.bookings.Count("w1"))
}

func TestBook_UnknownWebinarIsNotFound(t *testing.T) {
	f := newBookingFixture()
	seed(f, 15)

	rec := bookRequest(t, f, "w404", "p1", "p1@example.com")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBook_DuplicateIsConflict(t *testing.T) {
	f := newBookingFixture()
	seed(f, 15)

	require.Equal(t, http.StatusCreated, bookRequest(t, f, "w1", "p1", "p1@example.com").Code)
	rec := bookRequest(t, f, "w1", "p1", "p1@example.com")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"already registered"}`, rec.Body.String())
}

func TestBook_FullWebinarIsConflict(t *testing.T) {
	f := newBookingFixture()
	seed(f, 1)
	require.Equal(t, http.StatusCreated, bookRequest(t, f, "w1", "p1", "p1@example.com").Code)

	f.users.Add(model.User{ID: "p2", Email: "p2@example.com"})
	rec := bookRequest(t, f, "w1", "p2", "p2@example.com")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"no seats available"}`, rec.Body.String())
}
