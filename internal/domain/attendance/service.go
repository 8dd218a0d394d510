package attendance

import "context"

// AttendanceService defines business logic for the attendance ledger.
type AttendanceService interface {
	// Record upserts one observation. Managers may only write for their
	// current day and their own location. A part-time absent entry with a
	// zero salary override deletes the matching record instead.
	Record(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// BulkRecord writes a shared status for a set of staff on one date,
	// replacing any existing same-day full-time records.
	BulkRecord(ctx context.Context, req BulkRecordRequest) ([]AttendanceResponse, error)

	// DeletePartTime removes a part-time record by identity. On persistence
	// failure callers must reload the ledger rather than trust local state.
	DeletePartTime(ctx context.Context, id string) error

	ListByDate(ctx context.Context, date string) ([]AttendanceResponse, error)

	ListByPeriod(ctx context.Context, filter PeriodFilter) ([]AttendanceResponse, error)
}
