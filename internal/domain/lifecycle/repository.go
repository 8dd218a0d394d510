package lifecycle

import "context"

type ArchiveRepository interface {
	Create(ctx context.Context, rec ArchivedStaffRecord) (ArchivedStaffRecord, error)

	GetByID(ctx context.Context, id string) (ArchivedStaffRecord, error)

	GetByOriginalStaffID(ctx context.Context, staffID string) (*ArchivedStaffRecord, error)

	List(ctx context.Context) ([]ArchivedStaffRecord, error)

	Delete(ctx context.Context, id string) error
}
