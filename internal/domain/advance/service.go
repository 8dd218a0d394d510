package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdvanceService defines business logic for the advance ledger.
type AdvanceService interface {
	// GetCarryForward returns the newAdvance of the entry for the month
	// immediately preceding (month, year), or zero when none exists. Pure
	// read, never a write.
	GetCarryForward(ctx context.Context, staffID string, month, year int) (decimal.Decimal, error)

	// Upsert merges a partial update onto the period's entry, recomputes
	// newAdvance, and persists on the natural key. Admin only.
	Upsert(ctx context.Context, req UpsertAdvanceRequest) (AdvanceLedgerEntry, error)

	// OpenPeriod materializes the carry-forward for a new period: when no
	// entry exists and the previous period left a positive balance, it
	// writes an entry carrying that balance in. Returns the period's entry
	// either way (nil when there is nothing to carry and nothing stored).
	OpenPeriod(ctx context.Context, staffID string, month, year int) (*AdvanceLedgerEntry, error)

	ListByPeriod(ctx context.Context, month, year int) ([]AdvanceLedgerEntry, error)

	ListByStaff(ctx context.Context, staffID string) ([]AdvanceLedgerEntry, error)
}
