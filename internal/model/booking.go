package model

import "time"

// Booking links one user to one webinar. At most one booking may exist
// per (webinar, user) pair, and the number of bookings for a webinar
// never exceeds its seat capacity. Bookings are created exclusively by
// the booking service and are never mutated or deleted afterwards.
type Booking struct {
	ID        string    `json:"id"`
	WebinarID string    `json:"webinar_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
