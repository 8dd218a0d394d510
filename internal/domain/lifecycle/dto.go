package lifecycle

import (
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
)

type ArchiveRequest struct {
	StaffID string `json:"staff_id"`
	Reason  string `json:"reason"`
}

func (r *ArchiveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ArchiveResponse struct {
	ID                      string                      `json:"id"`
	OriginalStaffID         string                      `json:"original_staff_id"`
	Snapshot                staff.StaffResponse         `json:"snapshot"`
	Reason                  string                      `json:"reason,omitempty"`
	LeftDate                string                      `json:"left_date"`
	LastAdvanceData         *advance.AdvanceLedgerEntry `json:"last_advance_data,omitempty"`
	TotalAdvanceOutstanding decimal.Decimal             `json:"total_advance_outstanding"`
}

func ToResponse(rec ArchivedStaffRecord) ArchiveResponse {
	return ArchiveResponse{
		ID:                      rec.ID,
		OriginalStaffID:         rec.OriginalStaffID,
		Snapshot:                staff.ToResponse(rec.Snapshot),
		Reason:                  rec.Reason,
		LeftDate:                rec.LeftDate.Format("2006-01-02"),
		LastAdvanceData:         rec.LastAdvanceData,
		TotalAdvanceOutstanding: rec.TotalAdvanceOutstanding,
	}
}
