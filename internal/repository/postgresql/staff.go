package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, location, is_part_time, experience,
	   basic_salary, incentive, house_rent, total_salary,
	   join_date, active, sunday_penalty, salary_calculation_days,
	   supplements, meal_allowance, initial_salary, display_order,
	   created_at, updated_at`

func scanStaff(row pgx.Row) (staff.StaffMember, error) {
	var m staff.StaffMember
	var supplements []byte
	err := row.Scan(
		&m.ID, &m.Name, &m.Location, &m.IsPartTime, &m.Experience,
		&m.BasicSalary, &m.Incentive, &m.HouseRent, &m.TotalSalary,
		&m.JoinDate, &m.Active, &m.SundayPenalty, &m.SalaryCalculationDays,
		&supplements, &m.MealAllowance, &m.InitialSalary, &m.DisplayOrder,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return staff.StaffMember{}, err
	}
	if len(supplements) > 0 {
		if err := json.Unmarshal(supplements, &m.Supplements); err != nil {
			return staff.StaffMember{}, fmt.Errorf("failed to decode supplements: %w", err)
		}
	}
	return m, nil
}

func marshalSupplements(m map[string]decimal.Decimal) ([]byte, error) {
	if m == nil {
		m = map[string]decimal.Decimal{}
	}
	return json.Marshal(m)
}

// Create implements staff.StaffRepository.
func (r *staffRepository) Create(ctx context.Context, member staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	supplements, err := marshalSupplements(member.Supplements)
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("failed to encode supplements: %w", err)
	}

	query := `
		INSERT INTO staff_members (
			id, name, location, is_part_time, experience,
			basic_salary, incentive, house_rent, total_salary,
			join_date, active, sunday_penalty, salary_calculation_days,
			supplements, meal_allowance, initial_salary, display_order
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		member.ID, member.Name, member.Location, member.IsPartTime, member.Experience,
		member.BasicSalary, member.Incentive, member.HouseRent, member.TotalSalary,
		member.JoinDate, member.Active, member.SundayPenalty, member.SalaryCalculationDays,
		supplements, member.MealAllowance, member.InitialSalary, member.DisplayOrder,
	).Scan(&member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("failed to create staff member: %w", err)
	}

	return member, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id = $1`

	m, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}

	return m, nil
}

// Update implements staff.StaffRepository.
func (r *staffRepository) Update(ctx context.Context, member staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	supplements, err := marshalSupplements(member.Supplements)
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("failed to encode supplements: %w", err)
	}

	// initial_salary is intentionally absent: it is written once at creation.
	query := `
		UPDATE staff_members SET
			name = $2, location = $3, is_part_time = $4, experience = $5,
			basic_salary = $6, incentive = $7, house_rent = $8, total_salary = $9,
			sunday_penalty = $10, salary_calculation_days = $11,
			supplements = $12, meal_allowance = $13, display_order = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		member.ID, member.Name, member.Location, member.IsPartTime, member.Experience,
		member.BasicSalary, member.Incentive, member.HouseRent, member.TotalSalary,
		member.SundayPenalty, member.SalaryCalculationDays,
		supplements, member.MealAllowance, member.DisplayOrder,
	).Scan(&member.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to update staff member: %w", err)
	}

	return member, nil
}

// List implements staff.StaffRepository.
func (r *staffRepository) List(ctx context.Context, includeInactive bool) ([]staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff_members`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []staff.StaffMember
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SetActive implements staff.StaffRepository.
func (r *staffRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE staff_members SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set staff active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// UpdateDisplayOrder implements staff.StaffRepository.
func (r *staffRepository) UpdateDisplayOrder(ctx context.Context, id string, displayOrder int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE staff_members SET display_order = $2, updated_at = NOW() WHERE id = $1`, id, displayOrder)
	if err != nil {
		return fmt.Errorf("failed to update display order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// HardDelete implements staff.StaffRepository. A missing row is success:
// the soft delete usually flagged the member inactive instead of removing it.
func (r *staffRepository) HardDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM staff_members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}
