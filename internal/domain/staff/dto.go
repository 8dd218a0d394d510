package staff

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

// ========================================
// STAFF DTOs
// ========================================

type CreateStaffRequest struct {
	Name                  string                     `json:"name"`
	Location              string                     `json:"location"`
	IsPartTime            bool                       `json:"is_part_time"`
	Experience            string                     `json:"experience"`
	BasicSalary           decimal.Decimal            `json:"basic_salary"`
	Incentive             decimal.Decimal            `json:"incentive"`
	HouseRent             decimal.Decimal            `json:"house_rent"`
	TotalSalary           decimal.Decimal            `json:"total_salary"`
	JoinDate              string                     `json:"join_date"`
	SundayPenalty         bool                       `json:"sunday_penalty"`
	SalaryCalculationDays int                        `json:"salary_calculation_days"`
	Supplements           map[string]decimal.Decimal `json:"supplements"`
	MealAllowance         decimal.Decimal            `json:"meal_allowance"`
	DisplayOrder          int                        `json:"display_order"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !Location(r.Location).Valid() {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "unknown work location"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "join_date must be YYYY-MM-DD"})
	}
	if r.SalaryCalculationDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "salary_calculation_days", Message: "must not be negative"})
	}
	if r.BasicSalary.IsNegative() || r.Incentive.IsNegative() || r.HouseRent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary components must not be negative"})
	}
	if !r.TotalSalary.Equal(r.BasicSalary.Add(r.Incentive).Add(r.HouseRent)) {
		errs = append(errs, validator.ValidationError{Field: "total_salary", Message: "total must equal basic + incentive + house rent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateStaffRequest carries a partial update. Nil fields keep their current
// value. A change to any compensation component goes through the two-phase
// classification protocol.
type UpdateStaffRequest struct {
	ID                    string                      `json:"id"`
	Name                  *string                     `json:"name,omitempty"`
	Location              *string                     `json:"location,omitempty"`
	Experience            *string                     `json:"experience,omitempty"`
	BasicSalary           *decimal.Decimal            `json:"basic_salary,omitempty"`
	Incentive             *decimal.Decimal            `json:"incentive,omitempty"`
	HouseRent             *decimal.Decimal            `json:"house_rent,omitempty"`
	TotalSalary           *decimal.Decimal            `json:"total_salary,omitempty"`
	SundayPenalty         *bool                       `json:"sunday_penalty,omitempty"`
	SalaryCalculationDays *int                        `json:"salary_calculation_days,omitempty"`
	Supplements           *map[string]decimal.Decimal `json:"supplements,omitempty"`
	MealAllowance         *decimal.Decimal            `json:"meal_allowance,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Location != nil && !Location(*r.Location).Valid() {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "unknown work location"})
	}
	if r.SalaryCalculationDays != nil && *r.SalaryCalculationDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "salary_calculation_days", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Classification is the human decision a detected compensation change waits
// for: a genuine raise, or a correction of bad data.
type Classification string

const (
	ClassificationHike       Classification = "hike"
	ClassificationCorrection Classification = "correction"
)

func (c Classification) Valid() bool {
	return c == ClassificationHike || c == ClassificationCorrection
}

// PendingChange is the parked half of a two-phase compensation update. The
// staff row stays untouched until the caller resolves the classification.
type PendingChange struct {
	Token     string          `json:"token"`
	StaffID   string          `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	OldTotal  decimal.Decimal `json:"old_total"`
	NewTotal  decimal.Decimal `json:"new_total"`
	CreatedAt time.Time       `json:"created_at"`
}

type ResolveChangeRequest struct {
	Token          string         `json:"token"`
	Classification Classification `json:"classification"`
	Reason         string         `json:"reason,omitempty"`
}

func (r *ResolveChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "token is required"})
	}
	if !r.Classification.Valid() {
		errs = append(errs, validator.ValidationError{Field: "classification", Message: "must be hike or correction"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateOutcome is the result of proposing a compensation change: either the
// update applied immediately (no total change) or it awaits classification.
type UpdateOutcome struct {
	Applied *StaffResponse `json:"applied,omitempty"`
	Pending *PendingChange `json:"pending,omitempty"`
}

type ReorderItem struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

func (r *ReorderRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{Field: "items", Message: "items is required"})
	}
	for _, item := range r.Items {
		if validator.IsEmpty(item.ID) {
			errs = append(errs, validator.ValidationError{Field: "items", Message: "every item needs an id"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StaffResponse struct {
	ID                    string                     `json:"id"`
	Name                  string                     `json:"name"`
	Location              string                     `json:"location"`
	IsPartTime            bool                       `json:"is_part_time"`
	Experience            string                     `json:"experience"`
	BasicSalary           decimal.Decimal            `json:"basic_salary"`
	Incentive             decimal.Decimal            `json:"incentive"`
	HouseRent             decimal.Decimal            `json:"house_rent"`
	TotalSalary           decimal.Decimal            `json:"total_salary"`
	JoinDate              string                     `json:"join_date"`
	Active                bool                       `json:"active"`
	SundayPenalty         bool                       `json:"sunday_penalty"`
	SalaryCalculationDays int                        `json:"salary_calculation_days"`
	Supplements           map[string]decimal.Decimal `json:"supplements,omitempty"`
	MealAllowance         decimal.Decimal            `json:"meal_allowance"`
	InitialSalary         decimal.Decimal            `json:"initial_salary"`
	DisplayOrder          int                        `json:"display_order"`
}

func ToResponse(m StaffMember) StaffResponse {
	return StaffResponse{
		ID:                    m.ID,
		Name:                  m.Name,
		Location:              string(m.Location),
		IsPartTime:            m.IsPartTime,
		Experience:            m.Experience,
		BasicSalary:           m.BasicSalary,
		Incentive:             m.Incentive,
		HouseRent:             m.HouseRent,
		TotalSalary:           m.TotalSalary,
		JoinDate:              m.JoinDate.Format("2006-01-02"),
		Active:                m.Active,
		SundayPenalty:         m.SundayPenalty,
		SalaryCalculationDays: m.SalaryCalculationDays,
		Supplements:           m.Supplements,
		MealAllowance:         m.MealAllowance,
		InitialSalary:         m.InitialSalary,
		DisplayOrder:          m.DisplayOrder,
	}
}
