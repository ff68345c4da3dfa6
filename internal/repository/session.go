// Package repository provides persistence implementations for the
// session store.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// ErrSessionNotFound is returned when no session row matches the
// requested ID.
var ErrSessionNotFound = errors.New("session not found")

// PostgresSessionRepository implements session persistence using a
// PostgreSQL database.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sqlx.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
// with the given database connection.
func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// Create stores a new session row. The caller supplies the full
// record including the freshly generated ID.
func (r *PostgresSessionRepository) Create(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO sessions (id, role, name, token, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Role, s.Name, s.Token, s.CreatedAt,
	)
	return err
}

// Get loads the session with the given ID. Returns ErrSessionNotFound
// if the row does not exist.
func (r *PostgresSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := r.DB.GetContext(
		ctx,
		&s,
		`SELECT id, role, name, token, created_at FROM sessions WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the session with the given ID. Deleting a session
// that is already gone is not an error.
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
