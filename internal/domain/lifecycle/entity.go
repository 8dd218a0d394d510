package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
)

// ArchivedStaffRecord freezes a staff member at departure. It carries the
// full compensation snapshot, the most recent advance ledger entry, and the
// outstanding balance so a later rejoin can resume it. The record is removed
// when the staff member rejoins or is permanently purged.
type ArchivedStaffRecord struct {
	ID              string
	OriginalStaffID string
	Snapshot        staff.StaffMember
	Reason          string
	LeftDate        time.Time
	LastAdvanceData *advance.AdvanceLedgerEntry
	// TotalAdvanceOutstanding is the newAdvance of the most recently
	// touched ledger entry at departure time.
	TotalAdvanceOutstanding decimal.Decimal
	CreatedAt               time.Time
}
