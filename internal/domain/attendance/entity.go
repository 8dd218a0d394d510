package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// Value maps a status to its attendance weight. The weight is a pure
// function of status: Present 1, Half-Day 0.5, Absent 0. Nothing else may
// influence it, including per-staff divisors or overrides.
func (s Status) Value() decimal.Decimal {
	switch s {
	case StatusPresent:
		return decimal.NewFromInt(1)
	case StatusHalfDay:
		return decimal.New(5, -1)
	default:
		return decimal.Zero
	}
}

// AttendanceRecord is one observation per (staff, date, employment kind).
// That triple is the natural uniqueness key for upserts. Part-time records
// may carry denormalized staff attributes captured at entry time instead of
// joining a live staff row.
type AttendanceRecord struct {
	ID         string
	StaffID    string
	Date       time.Time
	IsPartTime bool
	Status     Status
	Value      decimal.Decimal
	// IsSunday is derived from Date, never caller-supplied.
	IsSunday bool
	Shift    *string

	// Part-time overrides.
	NameOverride     *string
	LocationOverride *string
	SalaryOverride   *decimal.Decimal
	ArrivalTime      *string
	LeavingTime      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
