package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Overrides carries the optional denormalized attributes a part-time entry
// may store instead of referencing a standing staff record.
type Overrides struct {
	Name        *string          `json:"name,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	ArrivalTime *string          `json:"arrival_time,omitempty"`
	LeavingTime *string          `json:"leaving_time,omitempty"`
}

type RecordRequest struct {
	StaffID    string     `json:"staff_id"`
	Date       string     `json:"date"`
	Status     Status     `json:"status"`
	IsPartTime bool       `json:"is_part_time"`
	Shift      *string    `json:"shift,omitempty"`
	Overrides  *Overrides `json:"overrides,omitempty"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be present, half_day or absent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsTombstone reports whether this request means "remove the part-time
// entry": part-time, absent, with an explicit zero salary override.
func (r *RecordRequest) IsTombstone() bool {
	return r.IsPartTime &&
		r.Status == StatusAbsent &&
		r.Overrides != nil &&
		r.Overrides.Salary != nil &&
		r.Overrides.Salary.IsZero()
}

type BulkRecordRequest struct {
	Date     string   `json:"date"`
	Status   Status   `json:"status"`
	StaffIDs []string `json:"staff_ids"`
}

func (r *BulkRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be present, half_day or absent"})
	}
	if len(r.StaffIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "staff_ids", Message: "staff_ids is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID          string           `json:"id"`
	StaffID     string           `json:"staff_id"`
	Date        string           `json:"date"`
	IsPartTime  bool             `json:"is_part_time"`
	Status      Status           `json:"status"`
	Value       decimal.Decimal  `json:"value"`
	IsSunday    bool             `json:"is_sunday"`
	Shift       *string          `json:"shift,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	ArrivalTime *string          `json:"arrival_time,omitempty"`
	LeavingTime *string          `json:"leaving_time,omitempty"`
	Deleted     bool             `json:"deleted,omitempty"`
}

func ToResponse(rec AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:          rec.ID,
		StaffID:     rec.StaffID,
		Date:        rec.Date.Format("2006-01-02"),
		IsPartTime:  rec.IsPartTime,
		Status:      rec.Status,
		Value:       rec.Value,
		IsSunday:    rec.IsSunday,
		Shift:       rec.Shift,
		Name:        rec.NameOverride,
		Location:    rec.LocationOverride,
		Salary:      rec.SalaryOverride,
		ArrivalTime: rec.ArrivalTime,
		LeavingTime: rec.LeavingTime,
	}
}

// PeriodFilter selects a calendar month of records.
type PeriodFilter struct {
	StaffID string
	Month   int
	Year    int
}
