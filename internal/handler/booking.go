package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/webinar-booking/internal/booking"
	"github.com/iliyamo/webinar-booking/internal/model"
)

// BookingHandler wraps the booking core in an HTTP endpoint. It owns no
// business logic: it assembles the request from the caller's JWT
// identity, invokes the service, and maps each failure kind to a
// distinct status code.
type BookingHandler struct {
	Service *booking.Service
}

func NewBookingHandler(s *booking.Service) *BookingHandler {
	if s == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: s}
}

// Book handles POST /v1/webinars/:id/bookings. Success carries no
// payload beyond 201: the booking was recorded and the organizer
// notified.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, email, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	webinarID := c.Param("id")
	if webinarID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webinar id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	err = h.Service.BookSeat(ctx, webinarID, model.UserRef{ID: userID, Email: email})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, echo.Map{"status": "booked"})
	case errors.Is(err, booking.ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
	case errors.Is(err, booking.ErrWebinarNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "webinar not found"})
	case errors.Is(err, booking.ErrNoSeatsAvailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "no seats available"})
	case errors.Is(err, booking.ErrAlreadyParticipating):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already registered"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
}
