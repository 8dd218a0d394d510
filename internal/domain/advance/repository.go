package advance

import "context"

// AdvanceRepository defines data access for advance ledger entries. Upsert
// is keyed on (staff_id, month, year); one entry per staff per period.
type AdvanceRepository interface {
	Upsert(ctx context.Context, entry AdvanceLedgerEntry) (AdvanceLedgerEntry, error)

	// GetByPeriod returns nil when no entry exists for the period.
	GetByPeriod(ctx context.Context, staffID string, month, year int) (*AdvanceLedgerEntry, error)

	// GetLatestByStaff returns the entry most recently touched (by
	// updated_at, not by period), or nil when the staff has none. Used to
	// compute the outstanding balance at departure.
	GetLatestByStaff(ctx context.Context, staffID string) (*AdvanceLedgerEntry, error)

	ListByPeriod(ctx context.Context, month, year int) ([]AdvanceLedgerEntry, error)

	ListByStaff(ctx context.Context, staffID string) ([]AdvanceLedgerEntry, error)

	// DeleteByStaff removes every entry for staffID. Only the permanent
	// staff purge uses this.
	DeleteByStaff(ctx context.Context, staffID string) error
}
