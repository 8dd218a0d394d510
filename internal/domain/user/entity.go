package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	// Location scopes manager accounts to one work location. Empty for admins.
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
