package hike

import "errors"

var (
	ErrHikeNotFound = errors.New("salary hike record not found")
)
