package hike

import (
	"context"
	"fmt"

	"github.com/staffbook/staffbook-backend-go/internal/domain/hike"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
)

type HikeServiceImpl struct {
	hikeRepo hike.HikeRepository
}

func NewHikeService(hikeRepo hike.HikeRepository) hike.HikeService {
	return &HikeServiceImpl{hikeRepo: hikeRepo}
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

// List implements hike.HikeService.
func (s *HikeServiceImpl) List(ctx context.Context) ([]hike.SalaryHikeRecord, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.hikeRepo.List(ctx)
}

// ListByStaff implements hike.HikeService.
func (s *HikeServiceImpl) ListByStaff(ctx context.Context, staffID string) ([]hike.SalaryHikeRecord, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.hikeRepo.ListByStaff(ctx, staffID)
}

// Update implements hike.HikeService. Repairs an existing audit row; it does
// not touch the staff member's current salary.
func (s *HikeServiceImpl) Update(ctx context.Context, req hike.UpdateHikeRequest) (hike.SalaryHikeRecord, error) {
	if err := req.Validate(); err != nil {
		return hike.SalaryHikeRecord{}, err
	}
	if err := requireAdmin(ctx); err != nil {
		return hike.SalaryHikeRecord{}, err
	}

	rec, err := s.hikeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return hike.SalaryHikeRecord{}, err
	}

	if req.OldSalary != nil {
		rec.OldSalary = *req.OldSalary
	}
	if req.NewSalary != nil {
		rec.NewSalary = *req.NewSalary
	}
	if req.Reason != nil {
		rec.Reason = req.Reason
	}

	updated, err := s.hikeRepo.Update(ctx, rec)
	if err != nil {
		return hike.SalaryHikeRecord{}, fmt.Errorf("failed to update hike record: %w", err)
	}
	return updated, nil
}

// Delete implements hike.HikeService.
func (s *HikeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.hikeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hike record: %w", err)
	}
	return nil
}
