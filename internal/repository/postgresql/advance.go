package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `id, staff_id, month, year, old_advance, current_advance, deduction,
	   new_advance, notes, created_at, updated_at`

func scanAdvance(row pgx.Row) (advance.AdvanceLedgerEntry, error) {
	var e advance.AdvanceLedgerEntry
	err := row.Scan(
		&e.ID, &e.StaffID, &e.Month, &e.Year, &e.OldAdvance, &e.CurrentAdvance, &e.Deduction,
		&e.NewAdvance, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Upsert implements advance.AdvanceRepository. One entry per staff per
// period: the (staff_id, month, year) constraint is the duplicate guard.
func (r *advanceRepository) Upsert(ctx context.Context, entry advance.AdvanceLedgerEntry) (advance.AdvanceLedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO advance_ledger_entries (
			id, staff_id, month, year, old_advance, current_advance, deduction, new_advance, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (staff_id, month, year) DO UPDATE SET
			old_advance = EXCLUDED.old_advance,
			current_advance = EXCLUDED.current_advance,
			deduction = EXCLUDED.deduction,
			new_advance = EXCLUDED.new_advance,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.StaffID, entry.Month, entry.Year,
		entry.OldAdvance, entry.CurrentAdvance, entry.Deduction, entry.NewAdvance, entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return advance.AdvanceLedgerEntry{}, fmt.Errorf("failed to upsert advance entry: %w", err)
	}

	return entry, nil
}

// GetByPeriod implements advance.AdvanceRepository.
func (r *advanceRepository) GetByPeriod(ctx context.Context, staffID string, month, year int) (*advance.AdvanceLedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + `
		FROM advance_ledger_entries
		WHERE staff_id = $1 AND month = $2 AND year = $3`

	e, err := scanAdvance(q.QueryRow(ctx, query, staffID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get advance entry: %w", err)
	}
	return &e, nil
}

// GetLatestByStaff implements advance.AdvanceRepository. Recency means
// updated_at, not period: the departure snapshot wants the entry last
// touched, which may predate the current month.
func (r *advanceRepository) GetLatestByStaff(ctx context.Context, staffID string) (*advance.AdvanceLedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + `
		FROM advance_ledger_entries
		WHERE staff_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	e, err := scanAdvance(q.QueryRow(ctx, query, staffID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest advance entry: %w", err)
	}
	return &e, nil
}

// ListByPeriod implements advance.AdvanceRepository.
func (r *advanceRepository) ListByPeriod(ctx context.Context, month, year int) ([]advance.AdvanceLedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + `
		FROM advance_ledger_entries
		WHERE month = $1 AND year = $2
		ORDER BY staff_id`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list advance entries: %w", err)
	}
	defer rows.Close()

	return collectAdvances(rows)
}

// ListByStaff implements advance.AdvanceRepository.
func (r *advanceRepository) ListByStaff(ctx context.Context, staffID string) ([]advance.AdvanceLedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + `
		FROM advance_ledger_entries
		WHERE staff_id = $1
		ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advance entries for staff: %w", err)
	}
	defer rows.Close()

	return collectAdvances(rows)
}

// DeleteByStaff implements advance.AdvanceRepository.
func (r *advanceRepository) DeleteByStaff(ctx context.Context, staffID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM advance_ledger_entries WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("failed to delete advance entries for staff: %w", err)
	}
	return nil
}

func collectAdvances(rows pgx.Rows) ([]advance.AdvanceLedgerEntry, error) {
	var entries []advance.AdvanceLedgerEntry
	for rows.Next() {
		e, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
