package staff

import "context"

// StaffService defines business logic for staff records, including the
// two-phase compensation change protocol.
type StaffService interface {
	// Create registers a new staff member (admin only). InitialSalary is
	// frozen to the request's total.
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)

	Get(ctx context.Context, id string) (StaffResponse, error)

	// List returns the staff visible to the caller: everything for admins,
	// own-location staff for managers.
	List(ctx context.Context) ([]StaffResponse, error)

	// ProposeCompensationChange applies the update immediately when the
	// total salary is unchanged; otherwise it parks the update and returns
	// a pending classification token.
	ProposeCompensationChange(ctx context.Context, req UpdateStaffRequest) (UpdateOutcome, error)

	// ResolveCompensationChange commits a parked update. A hike additionally
	// appends a salary-hike audit record; a correction does not.
	ResolveCompensationChange(ctx context.Context, req ResolveChangeRequest) (StaffResponse, error)

	// Reorder rewrites display orders atomically (admin only).
	Reorder(ctx context.Context, req ReorderRequest) error
}
