package hike

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryHikeRecord is one entry in the append-only audit trail of genuine
// raises. Corrections never produce one. Update/Delete exist solely so an
// admin can repair the trail itself.
type SalaryHikeRecord struct {
	ID        string          `json:"id"`
	StaffID   string          `json:"staff_id"`
	OldSalary decimal.Decimal `json:"old_salary"`
	NewSalary decimal.Decimal `json:"new_salary"`
	HikeDate  time.Time       `json:"hike_date"`
	Reason    *string         `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
