package auth

import "context"

type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)

	GetByID(ctx context.Context, id string) (Session, error)

	// UpdateExpiry slides the session's expiry window.
	UpdateExpiry(ctx context.Context, id string, expiresAtUnix int64) error

	Delete(ctx context.Context, id string) error
}
