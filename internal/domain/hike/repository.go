package hike

import "context"

type HikeRepository interface {
	Create(ctx context.Context, rec SalaryHikeRecord) (SalaryHikeRecord, error)

	GetByID(ctx context.Context, id string) (SalaryHikeRecord, error)

	// ListByStaff returns hikes newest first.
	ListByStaff(ctx context.Context, staffID string) ([]SalaryHikeRecord, error)

	List(ctx context.Context) ([]SalaryHikeRecord, error)

	// Update and Delete are administrative corrections of the audit trail.
	Update(ctx context.Context, rec SalaryHikeRecord) (SalaryHikeRecord, error)

	Delete(ctx context.Context, id string) error
}
