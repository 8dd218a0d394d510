package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/auth"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) auth.SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements auth.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, s auth.Session) (auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt); err != nil {
		return auth.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// GetByID implements auth.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	var s auth.Session
	err := q.QueryRow(ctx,
		`SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// UpdateExpiry implements auth.SessionRepository.
func (r *sessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAtUnix int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE sessions SET expires_at = $2 WHERE id = $1`, id, time.Unix(expiresAtUnix, 0).UTC())
	if err != nil {
		return fmt.Errorf("failed to update session expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

// Delete implements auth.SessionRepository. Deleting an absent session is
// not an error.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
