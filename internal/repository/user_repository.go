// Package repository implements the durable MySQL-backed stores for
// users, webinars and bookings. All timestamps are stored in UTC.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/webinar-booking/internal/model"
	"github.com/iliyamo/webinar-booking/internal/utils"
)

// ErrEmailExists is returned when registering an email that is already
// taken.
var ErrEmailExists = errors.New("email already exists")

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a generated UUID and a bcrypt hash of the
// password, and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, email, password string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash) VALUES (?,?,?)",
		id, email, hash)
	if err != nil {
		// 1062 = MySQL duplicate entry, here only possible on the
		// unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.mustGet(ctx, id)
}

// FindByID fetches a user by id. Absence is reported as (nil, nil) so
// the booking service can distinguish "not found" from a query failure.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a user by normalized email; used by login.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) mustGet(ctx context.Context, id string) (model.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if u == nil {
		return model.User{}, sql.ErrNoRows
	}
	return *u, nil
}
