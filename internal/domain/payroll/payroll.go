package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
)

// Breakdown is the derived payroll position of one staff member for one
// period. It has no persisted entity: it is recomputed from durable
// attendance, compensation and ledger records whenever asked.
type Breakdown struct {
	StaffID       string                     `json:"staff_id"`
	Name          string                     `json:"name"`
	Month         int                        `json:"month"`
	Year          int                        `json:"year"`
	TotalSalary   decimal.Decimal            `json:"total_salary"`
	PerDayRate    decimal.Decimal            `json:"per_day_rate"`
	PayableDays   decimal.Decimal            `json:"payable_days"`
	Gross         decimal.Decimal            `json:"gross"`
	Deduction     decimal.Decimal            `json:"deduction"`
	Supplements   map[string]decimal.Decimal `json:"supplements,omitempty"`
	MealAllowance decimal.Decimal            `json:"meal_allowance"`
	NetPayable    decimal.Decimal            `json:"net_payable"`
}

// Compute derives the payable amount for one staff member over one period.
//
// Per-day rate is totalSalary / salaryCalculationDays. Each record
// contributes its attendance value, except Sundays: with the Sunday penalty
// a Sunday contributes nothing regardless of status; without it a Sunday
// counts as a full paid day. The period's ledger deduction is subtracted,
// keyed supplements and the meal allowance added.
func Compute(member staff.StaffMember, month, year int, records []attendance.AttendanceRecord, entry *advance.AdvanceLedgerEntry) Breakdown {
	perDay := member.PerDayRate()

	payableDays := decimal.Zero
	for _, rec := range records {
		if rec.IsSunday {
			if member.SundayPenalty {
				continue
			}
			payableDays = payableDays.Add(decimal.NewFromInt(1))
			continue
		}
		payableDays = payableDays.Add(rec.Status.Value())
	}

	gross := payableDays.Mul(perDay)

	deduction := decimal.Zero
	if entry != nil {
		deduction = entry.Deduction
	}

	supplementTotal := decimal.Zero
	for _, amount := range member.Supplements {
		supplementTotal = supplementTotal.Add(amount)
	}

	net := gross.Sub(deduction).Add(supplementTotal).Add(member.MealAllowance)

	return Breakdown{
		StaffID:       member.ID,
		Name:          member.Name,
		Month:         month,
		Year:          year,
		TotalSalary:   member.TotalSalary,
		PerDayRate:    perDay,
		PayableDays:   payableDays,
		Gross:         gross,
		Deduction:     deduction,
		Supplements:   member.Supplements,
		MealAllowance: member.MealAllowance,
		NetPayable:    net,
	}
}
