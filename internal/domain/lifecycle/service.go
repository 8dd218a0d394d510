package lifecycle

import (
	"context"

	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
)

// LifecycleService orchestrates staff departure and return:
// Active -> Archived -> (Rejoined | Purged). Admin only throughout.
type LifecycleService interface {
	// Archive snapshots the staff member and their outstanding advance
	// balance, then flags the member inactive. Attendance and ledger
	// history stay untouched.
	Archive(ctx context.Context, req ArchiveRequest) (ArchiveResponse, error)

	// Rejoin creates a brand-new staff identity from the archived snapshot
	// and, when a balance is outstanding, opens a current-month ledger
	// entry carrying it. The archive record is consumed.
	Rejoin(ctx context.Context, archiveID string) (staff.StaffResponse, error)

	// Purge permanently removes the archive record, any residual staff row
	// (absence is expected, not an error) and all attendance for the
	// original staff id. Irreversible.
	Purge(ctx context.Context, archiveID string) error

	List(ctx context.Context) ([]ArchiveResponse, error)
}
