package model

import "time"

// Webinar represents a scheduled online event with a fixed number of
// seats and a single organizer. Webinars are created by organizers via
// the management endpoints; the booking core only reads them.
//
// Fields:
//  ID          – unique identifier (UUID string).
//  OrganizerID – user responsible for the webinar; notification target
//                for new bookings.
//  Title       – display title.
//  StartsAt    – when the webinar begins.
//  EndsAt      – when the webinar ends (must be after StartsAt).
//  Seats       – total seat capacity (positive).
//  CreatedAt   – timestamp of creation.
type Webinar struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Seats       int       `json:"seats"`
	CreatedAt   time.Time `json:"created_at"`
}
