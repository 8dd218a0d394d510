package staff

import "context"

// StaffRepository defines data access for staff members. Deactivation is a
// flag flip; HardDelete exists only for the lifecycle purge path, where an
// already-absent row counts as success.
type StaffRepository interface {
	Create(ctx context.Context, member StaffMember) (StaffMember, error)

	GetByID(ctx context.Context, id string) (StaffMember, error)

	// Update overwrites all mutable attributes of an existing row.
	Update(ctx context.Context, member StaffMember) (StaffMember, error)

	// List returns staff ordered by display_order.
	List(ctx context.Context, includeInactive bool) ([]StaffMember, error)

	SetActive(ctx context.Context, id string, active bool) error

	UpdateDisplayOrder(ctx context.Context, id string, displayOrder int) error

	// HardDelete removes the row if present; a missing row is not an error.
	HardDelete(ctx context.Context, id string) error
}
