package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/lifecycle"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/cache"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
)

const staffListCacheKey = "staff:list"

type LifecycleServiceImpl struct {
	archiveRepo    lifecycle.ArchiveRepository
	staffRepo      staff.StaffRepository
	advanceRepo    advance.AdvanceRepository
	attendanceRepo attendanceDeleter
	cache          *cache.Cache
	clk            clock.Clock
}

// attendanceDeleter is the slice of the attendance repository the purge path
// needs.
type attendanceDeleter interface {
	DeleteByStaff(ctx context.Context, staffID string) error
}

func NewLifecycleService(
	archiveRepo lifecycle.ArchiveRepository,
	staffRepo staff.StaffRepository,
	advanceRepo advance.AdvanceRepository,
	attendanceRepo attendanceDeleter,
	c *cache.Cache,
	clk clock.Clock,
) lifecycle.LifecycleService {
	return &LifecycleServiceImpl{
		archiveRepo:    archiveRepo,
		staffRepo:      staffRepo,
		advanceRepo:    advanceRepo,
		attendanceRepo: attendanceRepo,
		cache:          c,
		clk:            clk,
	}
}

func requireAdmin(ctx context.Context) error {
	id, err := user.FromContext(ctx)
	if err != nil {
		return err
	}
	if !id.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// Archive implements lifecycle.LifecycleService.
func (s *LifecycleServiceImpl) Archive(ctx context.Context, req lifecycle.ArchiveRequest) (lifecycle.ArchiveResponse, error) {
	if err := req.Validate(); err != nil {
		return lifecycle.ArchiveResponse{}, err
	}
	if err := requireAdmin(ctx); err != nil {
		return lifecycle.ArchiveResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return lifecycle.ArchiveResponse{}, err
	}

	existing, err := s.archiveRepo.GetByOriginalStaffID(ctx, req.StaffID)
	if err != nil {
		return lifecycle.ArchiveResponse{}, err
	}
	if existing != nil {
		return lifecycle.ArchiveResponse{}, lifecycle.ErrAlreadyArchived
	}

	// Outstanding balance comes from the most recently touched ledger entry,
	// not the latest period: a backfilled old month is the freshest truth.
	last, err := s.advanceRepo.GetLatestByStaff(ctx, req.StaffID)
	if err != nil {
		return lifecycle.ArchiveResponse{}, err
	}
	outstanding := decimal.Zero
	if last != nil {
		outstanding = last.NewAdvance
	}

	rec := lifecycle.ArchivedStaffRecord{
		OriginalStaffID:         member.ID,
		Snapshot:                member,
		Reason:                  req.Reason,
		LeftDate:                s.clk.Now(),
		LastAdvanceData:         last,
		TotalAdvanceOutstanding: outstanding,
	}

	created, err := s.archiveRepo.Create(ctx, rec)
	if err != nil {
		return lifecycle.ArchiveResponse{}, fmt.Errorf("failed to archive staff member: %w", err)
	}

	if err := s.staffRepo.SetActive(ctx, member.ID, false); err != nil {
		// Roll the archive back so the member is not both active and archived.
		if delErr := s.archiveRepo.Delete(ctx, created.ID); delErr != nil {
			slog.Error("failed to roll back archive record after deactivation failure",
				"archive_id", created.ID, "staff_id", member.ID, "error", delErr)
		}
		return lifecycle.ArchiveResponse{}, fmt.Errorf("failed to deactivate staff member: %w", err)
	}

	s.cache.Invalidate(ctx, staffListCacheKey)
	return lifecycle.ToResponse(created), nil
}

// Rejoin implements lifecycle.LifecycleService.
func (s *LifecycleServiceImpl) Rejoin(ctx context.Context, archiveID string) (staff.StaffResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return staff.StaffResponse{}, err
	}

	rec, err := s.archiveRepo.GetByID(ctx, archiveID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	now := s.clk.Now()

	// A rejoin is a new employment, not a reactivation: fresh identity, fresh
	// join date, compensation carried over from the snapshot.
	member := rec.Snapshot
	member.ID = ""
	member.Active = true
	member.JoinDate = now

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to recreate staff member: %w", err)
	}

	if rec.TotalAdvanceOutstanding.IsPositive() {
		entry := advance.AdvanceLedgerEntry{
			StaffID:    created.ID,
			Month:      int(now.Month()),
			Year:       now.Year(),
			OldAdvance: rec.TotalAdvanceOutstanding,
			NewAdvance: rec.TotalAdvanceOutstanding,
			Notes:      "restored on rejoin",
		}
		if _, err := s.advanceRepo.Upsert(ctx, entry); err != nil {
			// Undo the new identity; the archive stays intact for a retry.
			if delErr := s.staffRepo.HardDelete(ctx, created.ID); delErr != nil {
				slog.Error("failed to roll back rejoined staff after ledger restore failure",
					"staff_id", created.ID, "archive_id", archiveID, "error", delErr)
			}
			return staff.StaffResponse{}, fmt.Errorf("failed to restore advance balance: %w", err)
		}
	}

	if err := s.archiveRepo.Delete(ctx, archiveID); err != nil {
		// The member is back and their balance restored; a lingering archive
		// row is the least harmful leftover. Log and move on.
		slog.Error("rejoin completed but archive record removal failed",
			"archive_id", archiveID, "staff_id", created.ID, "error", err)
	}

	s.cache.Invalidate(ctx, staffListCacheKey)
	return staff.ToResponse(created), nil
}

// Purge implements lifecycle.LifecycleService. Every delete treats an absent
// target as success, so a purge interrupted halfway can simply be run again.
func (s *LifecycleServiceImpl) Purge(ctx context.Context, archiveID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	rec, err := s.archiveRepo.GetByID(ctx, archiveID)
	if err != nil {
		return err
	}

	if err := s.archiveRepo.Delete(ctx, archiveID); err != nil {
		return fmt.Errorf("failed to delete archive record: %w", err)
	}
	if err := s.staffRepo.HardDelete(ctx, rec.OriginalStaffID); err != nil {
		return fmt.Errorf("failed to delete staff row: %w", err)
	}
	if err := s.attendanceRepo.DeleteByStaff(ctx, rec.OriginalStaffID); err != nil {
		return fmt.Errorf("failed to delete attendance records: %w", err)
	}
	if err := s.advanceRepo.DeleteByStaff(ctx, rec.OriginalStaffID); err != nil {
		return fmt.Errorf("failed to delete advance ledger entries: %w", err)
	}

	s.cache.Invalidate(ctx, staffListCacheKey)
	return nil
}

// List implements lifecycle.LifecycleService.
func (s *LifecycleServiceImpl) List(ctx context.Context) ([]lifecycle.ArchiveResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	records, err := s.archiveRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]lifecycle.ArchiveResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, lifecycle.ToResponse(rec))
	}
	return responses, nil
}
