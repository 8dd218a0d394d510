package auth

import "time"

// SessionWindow is the sliding validity window: a session expires 30 days
// after it was last saved.
const SessionWindow = 30 * 24 * time.Hour

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
