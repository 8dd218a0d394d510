package payroll

import "context"

// PayrollService assembles derived payroll state for a period. Read only.
type PayrollService interface {
	// Summary computes breakdowns for every staff member visible to the
	// caller for the given month.
	Summary(ctx context.Context, month, year int) ([]Breakdown, error)

	// ForStaff computes a single staff member's breakdown.
	ForStaff(ctx context.Context, staffID string, month, year int) (Breakdown, error)
}
