package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, staff_id, date, is_part_time, status, value, is_sunday, shift,
	   name_override, location_override, salary_override, arrival_time, leaving_time,
	   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.StaffID, &rec.Date, &rec.IsPartTime, &rec.Status, &rec.Value, &rec.IsSunday, &rec.Shift,
		&rec.NameOverride, &rec.LocationOverride, &rec.SalaryOverride, &rec.ArrivalTime, &rec.LeavingTime,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Upsert implements attendance.AttendanceRepository. The unique constraint
// on (staff_id, date, is_part_time) makes a repeated write for the same
// observation an idempotent replace.
func (r *attendanceRepository) Upsert(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (
			id, staff_id, date, is_part_time, status, value, is_sunday, shift,
			name_override, location_override, salary_override, arrival_time, leaving_time
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (staff_id, date, is_part_time) DO UPDATE SET
			status = EXCLUDED.status,
			value = EXCLUDED.value,
			is_sunday = EXCLUDED.is_sunday,
			shift = EXCLUDED.shift,
			name_override = EXCLUDED.name_override,
			location_override = EXCLUDED.location_override,
			salary_override = EXCLUDED.salary_override,
			arrival_time = EXCLUDED.arrival_time,
			leaving_time = EXCLUDED.leaving_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.StaffID, rec.Date, rec.IsPartTime, rec.Status, rec.Value, rec.IsSunday, rec.Shift,
		rec.NameOverride, rec.LocationOverride, rec.SalaryOverride, rec.ArrivalTime, rec.LeavingTime,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetByNaturalKey implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByNaturalKey(ctx context.Context, staffID string, date time.Time, isPartTime bool) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE staff_id = $1 AND date = $2 AND is_part_time = $3`

	rec, err := scanAttendance(q.QueryRow(ctx, query, staffID, date, isPartTime))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by key: %w", err)
	}
	return &rec, nil
}

// FindPartTime implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindPartTime(ctx context.Context, staffID string, date time.Time, name string) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE staff_id = $1 AND date = $2 AND is_part_time AND name_override = $3
		LIMIT 1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, staffID, date, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find part-time attendance: %w", err)
	}
	return &rec, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// DeleteFullTimeByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteFullTimeByDate(ctx context.Context, date time.Time, staffIDs []string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM attendance_records WHERE date = $1 AND NOT is_part_time AND staff_id = ANY($2)`,
		date, staffIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to clear full-time attendance for date: %w", err)
	}
	return nil
}

// DeleteByStaff implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteByStaff(ctx context.Context, staffID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("failed to delete attendance for staff: %w", err)
	}
	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1
		ORDER BY is_part_time, staff_id`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByPeriod(ctx context.Context, filter attendance.PeriodFilter) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2`
	args := []any{filter.Month, filter.Year}

	if filter.StaffID != "" {
		query += ` AND staff_id = $3`
		args = append(args, filter.StaffID)
	}
	query += ` ORDER BY date, staff_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by period: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
