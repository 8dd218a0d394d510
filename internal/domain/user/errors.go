package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrOutsideLocationScope   = errors.New("outside your location scope")
)
