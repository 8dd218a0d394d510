package lifecycle

import "errors"

var (
	ErrArchiveNotFound = errors.New("archived staff record not found")
	ErrAlreadyArchived = errors.New("staff member is already archived")
)
