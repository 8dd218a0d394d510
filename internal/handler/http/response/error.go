package response

import (
	"errors"
	"net/http"

	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/auth"
	"github.com/staffbook/staffbook-backend-go/internal/domain/hike"
	"github.com/staffbook/staffbook-backend-go/internal/domain/lifecycle"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrSessionExpired):
		Unauthorized(w, "Session expired")
	case errors.Is(err, auth.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Authorization errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrOutsideLocationScope):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrDateNotToday):
		Forbidden(w, err.Error())

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrStaffInactive):
		Conflict(w, err.Error())
	case errors.Is(err, staff.ErrSalaryBreakdown):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, staff.ErrPendingChangeNotFound):
		NotFound(w, "Pending compensation change not found")
	case errors.Is(err, staff.ErrChangeNotPending):
		Conflict(w, err.Error())

	// Attendance and ledger errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, advance.ErrEntryNotFound):
		NotFound(w, "Advance ledger entry not found")
	case errors.Is(err, hike.ErrHikeNotFound):
		NotFound(w, "Salary hike record not found")

	// Lifecycle errors
	case errors.Is(err, lifecycle.ErrArchiveNotFound):
		NotFound(w, "Archived staff record not found")
	case errors.Is(err, lifecycle.ErrAlreadyArchived):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
