package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	staffRepo      staff.StaffRepository
	clk            clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		clk:            clk,
	}
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := user.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}

	// Managers write attendance for their current day only. Checked before
	// anything touches the store.
	if !id.IsAdmin() && req.Date != s.clk.Now().Format("2006-01-02") {
		return attendance.AttendanceResponse{}, attendance.ErrDateNotToday
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		// Part-time entries hold a weak staff reference and may carry
		// their own attributes instead of a standing record.
		if err != staff.ErrStaffNotFound || !req.IsPartTime {
			return attendance.AttendanceResponse{}, err
		}
	} else if !user.CanAccessStaff(id, member) {
		return attendance.AttendanceResponse{}, user.ErrOutsideLocationScope
	}

	if req.IsTombstone() {
		return s.deleteTombstone(ctx, req, member, date)
	}

	rec := attendance.AttendanceRecord{
		StaffID:    req.StaffID,
		Date:       date,
		IsPartTime: req.IsPartTime,
		Status:     req.Status,
		Value:      req.Status.Value(),
		IsSunday:   date.Weekday() == time.Sunday,
		Shift:      req.Shift,
	}
	if req.Overrides != nil {
		rec.NameOverride = req.Overrides.Name
		rec.LocationOverride = req.Overrides.Location
		rec.SalaryOverride = req.Overrides.Salary
		rec.ArrivalTime = req.Overrides.ArrivalTime
		rec.LeavingTime = req.Overrides.LeavingTime
	}

	stored, err := s.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	return attendance.ToResponse(stored), nil
}

// deleteTombstone handles the part-time removal signal: absent with a zero
// salary override means "take this entry out", not "store a zero".
func (s *AttendanceServiceImpl) deleteTombstone(ctx context.Context, req attendance.RecordRequest, member staff.StaffMember, date time.Time) (attendance.AttendanceResponse, error) {
	name := member.Name
	if req.Overrides != nil && req.Overrides.Name != nil {
		name = *req.Overrides.Name
	}

	existing, err := s.attendanceRepo.FindPartTime(ctx, req.StaffID, date, name)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing == nil {
		// Nothing stored for this key; deleting nothing is success.
		return attendance.AttendanceResponse{
			StaffID:    req.StaffID,
			Date:       req.Date,
			IsPartTime: true,
			Deleted:    true,
		}, nil
	}

	if err := s.attendanceRepo.Delete(ctx, existing.ID); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to delete part-time attendance: %w", err)
	}

	resp := attendance.ToResponse(*existing)
	resp.Deleted = true
	return resp, nil
}

// BulkRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkRecord(ctx context.Context, req attendance.BulkRecordRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := user.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}

	if !id.IsAdmin() && req.Date != s.clk.Now().Format("2006-01-02") {
		return nil, attendance.ErrDateNotToday
	}

	members, err := s.staffRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]staff.StaffMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	for _, staffID := range req.StaffIDs {
		m, ok := byID[staffID]
		if !ok {
			return nil, staff.ErrStaffNotFound
		}
		if !user.CanAccessStaff(id, m) {
			return nil, user.ErrOutsideLocationScope
		}
	}

	// Replace, don't merge: clear the day's full-time records for the
	// target set before rewriting them.
	if err := s.attendanceRepo.DeleteFullTimeByDate(ctx, date, req.StaffIDs); err != nil {
		return nil, err
	}

	isSunday := date.Weekday() == time.Sunday
	responses := make([]attendance.AttendanceResponse, 0, len(req.StaffIDs))
	for _, staffID := range req.StaffIDs {
		rec := attendance.AttendanceRecord{
			StaffID:    staffID,
			Date:       date,
			IsPartTime: false,
			Status:     req.Status,
			Value:      req.Status.Value(),
			IsSunday:   isSunday,
		}
		stored, err := s.attendanceRepo.Upsert(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("failed to bulk record attendance for staff %s: %w", staffID, err)
		}
		responses = append(responses, attendance.ToResponse(stored))
	}

	return responses, nil
}

// DeletePartTime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeletePartTime(ctx context.Context, id string) error {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && rec.LocationOverride != nil && *rec.LocationOverride != caller.Location {
		return user.ErrOutsideLocationScope
	}

	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, dateStr string) ([]attendance.AttendanceResponse, error) {
	id, err := user.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return s.scopedResponses(ctx, id, records)
}

// ListByPeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByPeriod(ctx context.Context, filter attendance.PeriodFilter) ([]attendance.AttendanceResponse, error) {
	id, err := user.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByPeriod(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.scopedResponses(ctx, id, records)
}

// scopedResponses filters records down to the caller's visible staff.
func (s *AttendanceServiceImpl) scopedResponses(ctx context.Context, id user.Identity, records []attendance.AttendanceRecord) ([]attendance.AttendanceResponse, error) {
	responses := make([]attendance.AttendanceResponse, 0, len(records))

	if id.IsAdmin() {
		for _, rec := range records {
			responses = append(responses, attendance.ToResponse(rec))
		}
		return responses, nil
	}

	members, err := s.staffRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	visible := make(map[string]bool)
	for _, m := range user.VisibleStaff(id, members) {
		visible[m.ID] = true
	}

	for _, rec := range records {
		if visible[rec.StaffID] {
			responses = append(responses, attendance.ToResponse(rec))
			continue
		}
		if rec.LocationOverride != nil && *rec.LocationOverride == id.Location {
			responses = append(responses, attendance.ToResponse(rec))
		}
	}
	return responses, nil
}
