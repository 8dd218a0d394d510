package auth

import "context"

// AuthService owns login and explicit session state. Sessions use a sliding
// 30-day window: every save pushes expiry out from "now".
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// LoadSession returns the session if it exists and has not expired.
	LoadSession(ctx context.Context, sessionID string) (Session, error)

	// SaveSession slides the expiry window forward from now.
	SaveSession(ctx context.Context, sessionID string) (Session, error)

	// ClearSession removes the session. Clearing an absent session is a no-op.
	ClearSession(ctx context.Context, sessionID string) error
}
