package user

import "github.com/staffbook/staffbook-backend-go/internal/domain/staff"

// VisibleStaff is the single authorization-scoped view over staff: admins
// see everyone, managers only their own location. Every read path filters
// through here instead of re-deriving the rule.
func VisibleStaff(id Identity, members []staff.StaffMember) []staff.StaffMember {
	if id.IsAdmin() {
		return members
	}
	visible := make([]staff.StaffMember, 0, len(members))
	for _, m := range members {
		if string(m.Location) == id.Location {
			visible = append(visible, m)
		}
	}
	return visible
}

// CanAccessStaff reports whether the caller may act on the given staff member.
func CanAccessStaff(id Identity, m staff.StaffMember) bool {
	return id.IsAdmin() || string(m.Location) == id.Location
}
