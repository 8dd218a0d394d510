package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Upsert is
// keyed on the natural key (staff_id, date, is_part_time); the database's
// conflict handling is the sole duplicate guard, so every write for the same
// logical observation must go through it.
type AttendanceRepository interface {
	// Upsert inserts or replaces the record identified by its natural key.
	Upsert(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// GetByNaturalKey returns nil when no record exists for the key.
	GetByNaturalKey(ctx context.Context, staffID string, date time.Time, isPartTime bool) (*AttendanceRecord, error)

	// FindPartTime locates a part-time record by staff, date and captured
	// name. Used by the tombstone deletion path.
	FindPartTime(ctx context.Context, staffID string, date time.Time, name string) (*AttendanceRecord, error)

	Delete(ctx context.Context, id string) error

	// DeleteFullTimeByDate clears existing full-time records for the given
	// staff on a date ahead of a bulk rewrite.
	DeleteFullTimeByDate(ctx context.Context, date time.Time, staffIDs []string) error

	// DeleteByStaff removes every record referencing staffID (purge path).
	DeleteByStaff(ctx context.Context, staffID string) error

	ListByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)

	ListByPeriod(ctx context.Context, filter PeriodFilter) ([]AttendanceRecord, error)
}
