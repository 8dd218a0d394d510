package staff

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/staffbook/staffbook-backend-go/internal/domain/hike"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/cache"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/validator"
	"github.com/staffbook/staffbook-backend-go/internal/repository/postgresql"
)

const staffListCacheKey = "staff:list"

// pendingUpdate is a parked compensation change awaiting its hike-or-
// correction classification. Held in memory only: each user action runs to
// completion within a session, so an unresolved proposal simply lapses with
// the process.
type pendingUpdate struct {
	change staff.PendingChange
	merged staff.StaffMember
}

type StaffServiceImpl struct {
	db        *database.DB
	staffRepo staff.StaffRepository
	hikeRepo  hike.HikeRepository
	cache     *cache.Cache
	clk       clock.Clock

	mu      sync.Mutex
	pending map[string]pendingUpdate
}

func NewStaffService(
	db *database.DB,
	staffRepo staff.StaffRepository,
	hikeRepo hike.HikeRepository,
	c *cache.Cache,
	clk clock.Clock,
) staff.StaffService {
	return &StaffServiceImpl{
		db:        db,
		staffRepo: staffRepo,
		hikeRepo:  hikeRepo,
		cache:     c,
		clk:       clk,
		pending:   make(map[string]pendingUpdate),
	}
}

func requireAdmin(ctx context.Context) (user.Identity, error) {
	id, err := user.FromContext(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if !id.IsAdmin() {
		return user.Identity{}, user.ErrAdminPrivilegeRequired
	}
	return id, nil
}

// Create implements staff.StaffService.
func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return staff.StaffResponse{}, err
	}

	joinDate, ok := validator.IsValidDate(req.JoinDate)
	if !ok {
		return staff.StaffResponse{}, validator.ValidationErrors{{Field: "join_date", Message: "join_date must be YYYY-MM-DD"}}
	}
	days := req.SalaryCalculationDays
	if days == 0 {
		days = staff.DefaultSalaryCalculationDays
	}

	member := staff.StaffMember{
		Name:                  req.Name,
		Location:              staff.Location(req.Location),
		IsPartTime:            req.IsPartTime,
		Experience:            req.Experience,
		BasicSalary:           req.BasicSalary,
		Incentive:             req.Incentive,
		HouseRent:             req.HouseRent,
		TotalSalary:           req.TotalSalary,
		JoinDate:              joinDate,
		Active:                true,
		SundayPenalty:         req.SundayPenalty,
		SalaryCalculationDays: days,
		Supplements:           req.Supplements,
		MealAllowance:         req.MealAllowance,
		// First-ever total; never recomputed after this point.
		InitialSalary: req.TotalSalary,
		DisplayOrder:  req.DisplayOrder,
	}

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to create staff member: %w", err)
	}

	s.cache.Invalidate(ctx, staffListCacheKey)
	return staff.ToResponse(created), nil
}

// Get implements staff.StaffService.
func (s *StaffServiceImpl) Get(ctx context.Context, id string) (staff.StaffResponse, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	if !user.CanAccessStaff(caller, member) {
		return staff.StaffResponse{}, user.ErrOutsideLocationScope
	}

	return staff.ToResponse(member), nil
}

// List implements staff.StaffService. The cache holds the unscoped list;
// role filtering happens after the read so managers never see a stale
// admin-shaped view.
func (s *StaffServiceImpl) List(ctx context.Context) ([]staff.StaffResponse, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	var members []staff.StaffMember
	if !s.cache.Get(ctx, staffListCacheKey, &members) {
		members, err = s.staffRepo.List(ctx, false)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, staffListCacheKey, members)
	}

	visible := user.VisibleStaff(caller, members)
	responses := make([]staff.StaffResponse, 0, len(visible))
	for _, m := range visible {
		responses = append(responses, staff.ToResponse(m))
	}
	return responses, nil
}

// ProposeCompensationChange implements staff.StaffService. An update that
// leaves the total salary untouched commits immediately; a changed total is
// parked until the caller classifies it as a hike or a correction.
func (s *StaffServiceImpl) ProposeCompensationChange(ctx context.Context, req staff.UpdateStaffRequest) (staff.UpdateOutcome, error) {
	if err := req.Validate(); err != nil {
		return staff.UpdateOutcome{}, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return staff.UpdateOutcome{}, err
	}

	current, err := s.staffRepo.GetByID(ctx, req.ID)
	if err != nil {
		return staff.UpdateOutcome{}, err
	}

	merged, err := applyUpdate(current, req)
	if err != nil {
		return staff.UpdateOutcome{}, err
	}

	if merged.TotalSalary.Equal(current.TotalSalary) {
		updated, err := s.staffRepo.Update(ctx, merged)
		if err != nil {
			return staff.UpdateOutcome{}, fmt.Errorf("failed to update staff member: %w", err)
		}
		s.cache.Invalidate(ctx, staffListCacheKey)
		resp := staff.ToResponse(updated)
		return staff.UpdateOutcome{Applied: &resp}, nil
	}

	change := staff.PendingChange{
		Token:     uuid.NewString(),
		StaffID:   current.ID,
		StaffName: current.Name,
		OldTotal:  current.TotalSalary,
		NewTotal:  merged.TotalSalary,
		CreatedAt: s.clk.Now(),
	}

	s.mu.Lock()
	s.pending[change.Token] = pendingUpdate{change: change, merged: merged}
	s.mu.Unlock()

	return staff.UpdateOutcome{Pending: &change}, nil
}

// ResolveCompensationChange implements staff.StaffService. The staff update
// commits first; a hike then appends its audit record. A failed audit write
// after a committed update is logged for manual reconciliation, never
// retried here.
func (s *StaffServiceImpl) ResolveCompensationChange(ctx context.Context, req staff.ResolveChangeRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return staff.StaffResponse{}, err
	}

	s.mu.Lock()
	pending, ok := s.pending[req.Token]
	s.mu.Unlock()
	if !ok {
		return staff.StaffResponse{}, staff.ErrPendingChangeNotFound
	}

	updated, err := s.staffRepo.Update(ctx, pending.merged)
	if err != nil {
		// The proposal stays parked so the caller can retry or abandon it.
		return staff.StaffResponse{}, fmt.Errorf("failed to update staff member: %w", err)
	}

	if req.Classification == staff.ClassificationHike {
		rec := hike.SalaryHikeRecord{
			StaffID:   updated.ID,
			OldSalary: pending.change.OldTotal,
			NewSalary: updated.TotalSalary,
			HikeDate:  s.clk.Now(),
		}
		if req.Reason != "" {
			rec.Reason = &req.Reason
		}
		if _, err := s.hikeRepo.Create(ctx, rec); err != nil {
			slog.Error("salary updated but hike audit entry failed; reconcile manually",
				"staff_id", updated.ID,
				"old_salary", pending.change.OldTotal,
				"new_salary", updated.TotalSalary,
				"error", err,
			)
		}
	}

	s.mu.Lock()
	delete(s.pending, req.Token)
	s.mu.Unlock()

	s.cache.Invalidate(ctx, staffListCacheKey)
	return staff.ToResponse(updated), nil
}

// Reorder implements staff.StaffService. Runs in one transaction so a
// partial failure leaves no half-applied ordering.
func (s *StaffServiceImpl) Reorder(ctx context.Context, req staff.ReorderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, item := range req.Items {
			if err := s.staffRepo.UpdateDisplayOrder(txCtx, item.ID, item.DisplayOrder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reorder staff: %w", err)
	}

	s.cache.Invalidate(ctx, staffListCacheKey)
	return nil
}

// applyUpdate merges a partial request onto the current member and keeps the
// compensation breakdown consistent: the total always equals the component
// sum, whether the caller sent components, a total, or both.
func applyUpdate(current staff.StaffMember, req staff.UpdateStaffRequest) (staff.StaffMember, error) {
	merged := current

	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Location != nil {
		merged.Location = staff.Location(*req.Location)
	}
	if req.Experience != nil {
		merged.Experience = *req.Experience
	}
	if req.SundayPenalty != nil {
		merged.SundayPenalty = *req.SundayPenalty
	}
	if req.SalaryCalculationDays != nil {
		merged.SalaryCalculationDays = *req.SalaryCalculationDays
	}
	if req.Supplements != nil {
		merged.Supplements = *req.Supplements
	}
	if req.MealAllowance != nil {
		merged.MealAllowance = *req.MealAllowance
	}

	if req.BasicSalary != nil {
		merged.BasicSalary = *req.BasicSalary
	}
	if req.Incentive != nil {
		merged.Incentive = *req.Incentive
	}
	if req.HouseRent != nil {
		merged.HouseRent = *req.HouseRent
	}

	componentTotal := merged.ComponentTotal()
	if req.TotalSalary != nil && !req.TotalSalary.Equal(componentTotal) {
		return staff.StaffMember{}, staff.ErrSalaryBreakdown
	}
	merged.TotalSalary = componentTotal

	return merged, nil
}
