package advance

import (
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

// UpsertAdvanceRequest is a partial update merged onto the existing entry
// for (staff_id, month, year). Nil fields keep the stored value, or zero
// when no entry exists yet. NewAdvance is never accepted from the caller;
// the service recomputes it.
type UpsertAdvanceRequest struct {
	StaffID        string           `json:"staff_id"`
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	OldAdvance     *decimal.Decimal `json:"old_advance,omitempty"`
	CurrentAdvance *decimal.Decimal `json:"current_advance,omitempty"`
	Deduction      *decimal.Decimal `json:"deduction,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

func (r *UpsertAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.CurrentAdvance != nil && r.CurrentAdvance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "current_advance", Message: "must not be negative"})
	}
	if r.Deduction != nil && r.Deduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deduction", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
