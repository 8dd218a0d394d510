package payroll

import (
	"context"

	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/payroll"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	staffRepo      staff.StaffRepository
	attendanceRepo attendance.AttendanceRepository
	advanceRepo    advance.AdvanceRepository
}

func NewPayrollService(
	staffRepo staff.StaffRepository,
	attendanceRepo attendance.AttendanceRepository,
	advanceRepo advance.AdvanceRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		staffRepo:      staffRepo,
		attendanceRepo: attendanceRepo,
		advanceRepo:    advanceRepo,
	}
}

func validatePeriod(month, year int) error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12"})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Summary implements payroll.PayrollService. Nothing here is persisted: the
// breakdowns are rebuilt from attendance, compensation and ledger state on
// every call.
func (s *PayrollServiceImpl) Summary(ctx context.Context, month, year int) ([]payroll.Breakdown, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	caller, err := user.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	members, err := s.staffRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	members = user.VisibleStaff(caller, members)

	records, err := s.attendanceRepo.ListByPeriod(ctx, attendance.PeriodFilter{Month: month, Year: year})
	if err != nil {
		return nil, err
	}
	byStaff := make(map[string][]attendance.AttendanceRecord)
	for _, rec := range records {
		byStaff[rec.StaffID] = append(byStaff[rec.StaffID], rec)
	}

	entries, err := s.advanceRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	entryByStaff := make(map[string]advance.AdvanceLedgerEntry, len(entries))
	for _, e := range entries {
		entryByStaff[e.StaffID] = e
	}

	breakdowns := make([]payroll.Breakdown, 0, len(members))
	for _, m := range members {
		var entry *advance.AdvanceLedgerEntry
		if e, ok := entryByStaff[m.ID]; ok {
			entry = &e
		}
		breakdowns = append(breakdowns, payroll.Compute(m, month, year, byStaff[m.ID], entry))
	}
	return breakdowns, nil
}

// ForStaff implements payroll.PayrollService.
func (s *PayrollServiceImpl) ForStaff(ctx context.Context, staffID string, month, year int) (payroll.Breakdown, error) {
	if err := validatePeriod(month, year); err != nil {
		return payroll.Breakdown{}, err
	}

	caller, err := user.FromContext(ctx)
	if err != nil {
		return payroll.Breakdown{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return payroll.Breakdown{}, err
	}
	if !user.CanAccessStaff(caller, member) {
		return payroll.Breakdown{}, user.ErrOutsideLocationScope
	}

	records, err := s.attendanceRepo.ListByPeriod(ctx, attendance.PeriodFilter{StaffID: staffID, Month: month, Year: year})
	if err != nil {
		return payroll.Breakdown{}, err
	}

	entry, err := s.advanceRepo.GetByPeriod(ctx, staffID, month, year)
	if err != nil {
		return payroll.Breakdown{}, err
	}

	return payroll.Compute(member, month, year, records, entry), nil
}
