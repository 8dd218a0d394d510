package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("attendance record not found")

	// Managers may only write attendance for their current day.
	ErrDateNotToday = errors.New("managers can only record attendance for today")
)
