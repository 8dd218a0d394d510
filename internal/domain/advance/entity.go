package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceLedgerEntry tracks the advance (loan) position of one staff member
// for one month: balance carried in, new amount issued, amount repaid, and
// the resulting balance. Natural key: (staff_id, month, year).
type AdvanceLedgerEntry struct {
	ID             string          `json:"id"`
	StaffID        string          `json:"staff_id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	OldAdvance     decimal.Decimal `json:"old_advance"`
	CurrentAdvance decimal.Decimal `json:"current_advance"`
	Deduction      decimal.Decimal `json:"deduction"`
	NewAdvance     decimal.Decimal `json:"new_advance"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Balance recomputes the resulting balance from the entry's parts, clamped
// at zero. Stored newAdvance is always derived through here, never trusted
// from a caller.
func (e AdvanceLedgerEntry) Balance() decimal.Decimal {
	b := e.OldAdvance.Add(e.CurrentAdvance).Sub(e.Deduction)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// PreviousPeriod returns the month immediately before (month, year),
// wrapping January back to December of the prior year.
func PreviousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
