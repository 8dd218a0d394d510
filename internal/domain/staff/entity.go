package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type Location string

const (
	LocationMainShop  Location = "Main Shop"
	LocationSmallShop Location = "Small Shop"
	LocationGodown    Location = "Godown"
)

func (l Location) Valid() bool {
	switch l {
	case LocationMainShop, LocationSmallShop, LocationGodown:
		return true
	}
	return false
}

// DefaultSalaryCalculationDays is the divisor used to derive the per-day
// rate from total monthly salary when a staff member has no override.
const DefaultSalaryCalculationDays = 30

type StaffMember struct {
	ID         string
	Name       string
	Location   Location
	IsPartTime bool
	Experience string

	// Compensation breakdown. TotalSalary is always Basic + Incentive +
	// HouseRent; keyed supplements and meal allowance are period additions
	// applied at payroll time, not part of the monthly total.
	BasicSalary decimal.Decimal
	Incentive   decimal.Decimal
	HouseRent   decimal.Decimal
	TotalSalary decimal.Decimal

	JoinDate              time.Time
	Active                bool
	SundayPenalty         bool
	SalaryCalculationDays int
	Supplements           map[string]decimal.Decimal
	MealAllowance         decimal.Decimal
	// InitialSalary is the first-ever total, set at creation and never
	// recomputed afterwards.
	InitialSalary decimal.Decimal
	DisplayOrder  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComponentTotal returns Basic + Incentive + HouseRent.
func (m StaffMember) ComponentTotal() decimal.Decimal {
	return m.BasicSalary.Add(m.Incentive).Add(m.HouseRent)
}

// PerDayRate returns TotalSalary divided by the salary-calculation-days
// divisor, falling back to the default when unset.
func (m StaffMember) PerDayRate() decimal.Decimal {
	days := m.SalaryCalculationDays
	if days <= 0 {
		days = DefaultSalaryCalculationDays
	}
	return m.TotalSalary.Div(decimal.NewFromInt(int64(days)))
}
