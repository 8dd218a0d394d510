package staff

import "errors"

var (
	ErrStaffNotFound         = errors.New("staff member not found")
	ErrStaffInactive         = errors.New("staff member is not active")
	ErrSalaryBreakdown       = errors.New("total salary must equal basic + incentive + house rent")
	ErrPendingChangeNotFound = errors.New("pending compensation change not found")
	ErrChangeNotPending      = errors.New("compensation change does not require classification")
)
