package hike

import (
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

// UpdateHikeRequest corrects an existing audit row. Nil fields are kept.
type UpdateHikeRequest struct {
	ID        string           `json:"id"`
	OldSalary *decimal.Decimal `json:"old_salary,omitempty"`
	NewSalary *decimal.Decimal `json:"new_salary,omitempty"`
	Reason    *string          `json:"reason,omitempty"`
}

func (r *UpdateHikeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
