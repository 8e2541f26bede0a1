package model

import "time"

// User represents an application user record as stored in the `users`
// table. Users are created and managed by the auth endpoints; the
// booking core only ever reads them to verify that a caller exists.
//
// Fields:
//  ID           – unique identifier of the user (UUID string).
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password, opaque to the booking core.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// UserRef is the caller identity carried in a booking request. It is
// not trusted as proof of existence; the booking service re-verifies
// the ID against the user store before doing anything else.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
