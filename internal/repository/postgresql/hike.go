package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/hike"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
)

type hikeRepository struct {
	db *database.DB
}

func NewHikeRepository(db *database.DB) hike.HikeRepository {
	return &hikeRepository{db: db}
}

const hikeColumns = `id, staff_id, old_salary, new_salary, hike_date, reason, created_at`

func scanHike(row pgx.Row) (hike.SalaryHikeRecord, error) {
	var rec hike.SalaryHikeRecord
	err := row.Scan(&rec.ID, &rec.StaffID, &rec.OldSalary, &rec.NewSalary, &rec.HikeDate, &rec.Reason, &rec.CreatedAt)
	return rec, err
}

// Create implements hike.HikeRepository.
func (r *hikeRepository) Create(ctx context.Context, rec hike.SalaryHikeRecord) (hike.SalaryHikeRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO salary_hikes (id, staff_id, old_salary, new_salary, hike_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.StaffID, rec.OldSalary, rec.NewSalary, rec.HikeDate, rec.Reason,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return hike.SalaryHikeRecord{}, fmt.Errorf("failed to create salary hike: %w", err)
	}

	return rec, nil
}

// GetByID implements hike.HikeRepository.
func (r *hikeRepository) GetByID(ctx context.Context, id string) (hike.SalaryHikeRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanHike(q.QueryRow(ctx, `SELECT `+hikeColumns+` FROM salary_hikes WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return hike.SalaryHikeRecord{}, hike.ErrHikeNotFound
		}
		return hike.SalaryHikeRecord{}, fmt.Errorf("failed to get salary hike: %w", err)
	}
	return rec, nil
}

// ListByStaff implements hike.HikeRepository.
func (r *hikeRepository) ListByStaff(ctx context.Context, staffID string) ([]hike.SalaryHikeRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+hikeColumns+` FROM salary_hikes WHERE staff_id = $1 ORDER BY hike_date DESC`, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary hikes for staff: %w", err)
	}
	defer rows.Close()

	return collectHikes(rows)
}

// List implements hike.HikeRepository.
func (r *hikeRepository) List(ctx context.Context) ([]hike.SalaryHikeRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+hikeColumns+` FROM salary_hikes ORDER BY hike_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary hikes: %w", err)
	}
	defer rows.Close()

	return collectHikes(rows)
}

// Update implements hike.HikeRepository.
func (r *hikeRepository) Update(ctx context.Context, rec hike.SalaryHikeRecord) (hike.SalaryHikeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_hikes
		SET old_salary = $2, new_salary = $3, reason = $4
		WHERE id = $1
		RETURNING hike_date, created_at
	`

	err := q.QueryRow(ctx, query, rec.ID, rec.OldSalary, rec.NewSalary, rec.Reason).
		Scan(&rec.HikeDate, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return hike.SalaryHikeRecord{}, hike.ErrHikeNotFound
		}
		return hike.SalaryHikeRecord{}, fmt.Errorf("failed to update salary hike: %w", err)
	}

	return rec, nil
}

// Delete implements hike.HikeRepository.
func (r *hikeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_hikes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary hike: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return hike.ErrHikeNotFound
	}
	return nil
}

func collectHikes(rows pgx.Rows) ([]hike.SalaryHikeRecord, error) {
	var records []hike.SalaryHikeRecord
	for rows.Next() {
		rec, err := scanHike(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary hike: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
