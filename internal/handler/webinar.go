package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/webinar-booking/internal/repository"
)

// WebinarHandler exposes webinar management for organizers: creating
// webinars, listing their own, and inspecting the registrations of a
// webinar they organize. Webinar management is a collaborator of the
// booking core, which only ever reads webinar records.
type WebinarHandler struct {
	Webinars *repository.WebinarRepo
	Bookings *repository.BookingRepo
}

func NewWebinarHandler(w *repository.WebinarRepo, b *repository.BookingRepo) *WebinarHandler {
	if w == nil || b == nil {
		panic("nil repository passed to NewWebinarHandler")
	}
	return &WebinarHandler{Webinars: w, Bookings: b}
}

type createWebinarReq struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Seats    int       `json:"seats"`
}

// Create handles POST /v1/webinars. The authenticated caller becomes
// the organizer.
func (h *WebinarHandler) Create(c echo.Context) error {
	organizerID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createWebinarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.Seats <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats must be positive"})
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() || !req.StartsAt.Before(req.EndsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be before ends_at"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Webinars.Create(ctx, organizerID, req.Title, req.StartsAt, req.EndsAt, req.Seats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create webinar failed"})
	}
	return c.JSON(http.StatusCreated, w)
}

// ListMine handles GET /v1/webinars and returns the webinars organized
// by the caller, newest first.
func (h *WebinarHandler) ListMine(c echo.Context) error {
	organizerID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	webinars, err := h.Webinars.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list webinars failed"})
	}
	return c.JSON(http.StatusOK, webinars)
}

// Get handles GET /v1/webinars/:id and returns the webinar together
// with the number of seats still available.
func (h *WebinarHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webinar id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Webinars.FindByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "webinar not found"})
	}
	bookings, err := h.Bookings.ListByWebinar(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"webinar":         w,
		"seats_available": w.Seats - len(bookings),
	})
}

// Registrations handles GET /v1/webinars/:id/registrations. Only the
// organizer of the webinar may inspect its bookings.
func (h *WebinarHandler) Registrations(c echo.Context) error {
	callerID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webinar id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Webinars.FindByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "webinar not found"})
	}
	if w.OrganizerID != callerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	bookings, err := h.Bookings.ListByWebinar(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}
