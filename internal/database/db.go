// Package database manages the MySQL connection and schema for the
// webinar booking service.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables the service needs if they do not
// exist yet. The UNIQUE KEY on bookings(webinar_id, user_id) backs the
// duplicate-participation guarantee at the storage level.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            CHAR(36)     NOT NULL,
			email         VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS webinars (
			id           CHAR(36)     NOT NULL,
			organizer_id CHAR(36)     NOT NULL,
			title        VARCHAR(255) NOT NULL,
			starts_at    DATETIME     NOT NULL,
			ends_at      DATETIME     NOT NULL,
			seats        INT          NOT NULL,
			created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_webinars_organizer (organizer_id),
			CONSTRAINT fk_webinars_organizer FOREIGN KEY (organizer_id) REFERENCES users (id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id         CHAR(36) NOT NULL,
			webinar_id CHAR(36) NOT NULL,
			user_id    CHAR(36) NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_bookings_webinar_user (webinar_id, user_id),
			CONSTRAINT fk_bookings_webinar FOREIGN KEY (webinar_id) REFERENCES webinars (id),
			CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id)
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
