package advance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
)

type AdvanceServiceImpl struct {
	advanceRepo advance.AdvanceRepository
}

func NewAdvanceService(advanceRepo advance.AdvanceRepository) advance.AdvanceService {
	return &AdvanceServiceImpl{advanceRepo: advanceRepo}
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

// GetCarryForward implements advance.AdvanceService.
func (s *AdvanceServiceImpl) GetCarryForward(ctx context.Context, staffID string, month, year int) (decimal.Decimal, error) {
	if err := requireAdmin(ctx); err != nil {
		return decimal.Zero, err
	}

	prevMonth, prevYear := advance.PreviousPeriod(month, year)
	entry, err := s.advanceRepo.GetByPeriod(ctx, staffID, prevMonth, prevYear)
	if err != nil {
		return decimal.Zero, err
	}
	if entry == nil {
		return decimal.Zero, nil
	}
	return entry.NewAdvance, nil
}

// Upsert implements advance.AdvanceService. The partial update is merged
// onto the stored entry (or zeros) and newAdvance is recomputed from parts;
// caller-supplied balances are never trusted.
func (s *AdvanceServiceImpl) Upsert(ctx context.Context, req advance.UpsertAdvanceRequest) (advance.AdvanceLedgerEntry, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceLedgerEntry{}, err
	}
	if err := requireAdmin(ctx); err != nil {
		return advance.AdvanceLedgerEntry{}, err
	}

	existing, err := s.advanceRepo.GetByPeriod(ctx, req.StaffID, req.Month, req.Year)
	if err != nil {
		return advance.AdvanceLedgerEntry{}, err
	}

	entry := advance.AdvanceLedgerEntry{
		StaffID: req.StaffID,
		Month:   req.Month,
		Year:    req.Year,
	}
	if existing != nil {
		entry = *existing
	}

	if req.OldAdvance != nil {
		entry.OldAdvance = *req.OldAdvance
	}
	if req.CurrentAdvance != nil {
		entry.CurrentAdvance = *req.CurrentAdvance
	}
	if req.Deduction != nil {
		entry.Deduction = *req.Deduction
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	entry.NewAdvance = entry.Balance()

	stored, err := s.advanceRepo.Upsert(ctx, entry)
	if err != nil {
		return advance.AdvanceLedgerEntry{}, fmt.Errorf("failed to upsert advance: %w", err)
	}
	return stored, nil
}

// OpenPeriod implements advance.AdvanceService. Carry-forward is not
// materialized on a schedule; it happens here, lazily, when a new period is
// first opened.
func (s *AdvanceServiceImpl) OpenPeriod(ctx context.Context, staffID string, month, year int) (*advance.AdvanceLedgerEntry, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	existing, err := s.advanceRepo.GetByPeriod(ctx, staffID, month, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	prevMonth, prevYear := advance.PreviousPeriod(month, year)
	prev, err := s.advanceRepo.GetByPeriod(ctx, staffID, prevMonth, prevYear)
	if err != nil {
		return nil, err
	}
	if prev == nil || !prev.NewAdvance.IsPositive() {
		return nil, nil
	}

	entry := advance.AdvanceLedgerEntry{
		StaffID:    staffID,
		Month:      month,
		Year:       year,
		OldAdvance: prev.NewAdvance,
		NewAdvance: prev.NewAdvance,
		Notes:      fmt.Sprintf("carried forward from %02d/%d", prevMonth, prevYear),
	}

	stored, err := s.advanceRepo.Upsert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to open advance period: %w", err)
	}
	return &stored, nil
}

// ListByPeriod implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListByPeriod(ctx context.Context, month, year int) ([]advance.AdvanceLedgerEntry, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.advanceRepo.ListByPeriod(ctx, month, year)
}

// ListByStaff implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListByStaff(ctx context.Context, staffID string) ([]advance.AdvanceLedgerEntry, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.advanceRepo.ListByStaff(ctx, staffID)
}
