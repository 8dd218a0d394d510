package hike

import "context"

// HikeService exposes the salary-hike audit trail. Appending happens inside
// the staff compensation-change flow, not here.
type HikeService interface {
	List(ctx context.Context) ([]SalaryHikeRecord, error)

	ListByStaff(ctx context.Context, staffID string) ([]SalaryHikeRecord, error)

	Update(ctx context.Context, req UpdateHikeRequest) (SalaryHikeRecord, error)

	Delete(ctx context.Context, id string) error
}
