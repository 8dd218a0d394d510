package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/lifecycle"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
)

type archiveRepository struct {
	db *database.DB
}

func NewArchiveRepository(db *database.DB) lifecycle.ArchiveRepository {
	return &archiveRepository{db: db}
}

const archiveColumns = `id, original_staff_id, snapshot, reason, left_date,
	   last_advance, total_advance_outstanding, created_at`

func scanArchive(row pgx.Row) (lifecycle.ArchivedStaffRecord, error) {
	var rec lifecycle.ArchivedStaffRecord
	var snapshot, lastAdvance []byte
	err := row.Scan(
		&rec.ID, &rec.OriginalStaffID, &snapshot, &rec.Reason, &rec.LeftDate,
		&lastAdvance, &rec.TotalAdvanceOutstanding, &rec.CreatedAt,
	)
	if err != nil {
		return lifecycle.ArchivedStaffRecord{}, err
	}
	if err := json.Unmarshal(snapshot, &rec.Snapshot); err != nil {
		return lifecycle.ArchivedStaffRecord{}, fmt.Errorf("failed to decode staff snapshot: %w", err)
	}
	if len(lastAdvance) > 0 {
		var entry advance.AdvanceLedgerEntry
		if err := json.Unmarshal(lastAdvance, &entry); err != nil {
			return lifecycle.ArchivedStaffRecord{}, fmt.Errorf("failed to decode last advance: %w", err)
		}
		rec.LastAdvanceData = &entry
	}
	return rec, nil
}

// Create implements lifecycle.ArchiveRepository.
func (r *archiveRepository) Create(ctx context.Context, rec lifecycle.ArchivedStaffRecord) (lifecycle.ArchivedStaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	snapshot, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return lifecycle.ArchivedStaffRecord{}, fmt.Errorf("failed to encode staff snapshot: %w", err)
	}
	var lastAdvance []byte
	if rec.LastAdvanceData != nil {
		lastAdvance, err = json.Marshal(rec.LastAdvanceData)
		if err != nil {
			return lifecycle.ArchivedStaffRecord{}, fmt.Errorf("failed to encode last advance: %w", err)
		}
	}

	query := `
		INSERT INTO archived_staff (
			id, original_staff_id, snapshot, reason, left_date,
			last_advance, total_advance_outstanding
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		rec.ID, rec.OriginalStaffID, snapshot, rec.Reason, rec.LeftDate,
		lastAdvance, rec.TotalAdvanceOutstanding,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return lifecycle.ArchivedStaffRecord{}, fmt.Errorf("failed to create archive record: %w", err)
	}

	return rec, nil
}

// GetByID implements lifecycle.ArchiveRepository.
func (r *archiveRepository) GetByID(ctx context.Context, id string) (lifecycle.ArchivedStaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanArchive(q.QueryRow(ctx, `SELECT `+archiveColumns+` FROM archived_staff WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return lifecycle.ArchivedStaffRecord{}, lifecycle.ErrArchiveNotFound
		}
		return lifecycle.ArchivedStaffRecord{}, fmt.Errorf("failed to get archive record: %w", err)
	}
	return rec, nil
}

// GetByOriginalStaffID implements lifecycle.ArchiveRepository.
func (r *archiveRepository) GetByOriginalStaffID(ctx context.Context, staffID string) (*lifecycle.ArchivedStaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanArchive(q.QueryRow(ctx,
		`SELECT `+archiveColumns+` FROM archived_staff WHERE original_staff_id = $1`, staffID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get archive record by staff id: %w", err)
	}
	return &rec, nil
}

// List implements lifecycle.ArchiveRepository.
func (r *archiveRepository) List(ctx context.Context) ([]lifecycle.ArchivedStaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+archiveColumns+` FROM archived_staff ORDER BY left_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive records: %w", err)
	}
	defer rows.Close()

	var records []lifecycle.ArchivedStaffRecord
	for rows.Next() {
		rec, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archive record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete implements lifecycle.ArchiveRepository.
func (r *archiveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM archived_staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete archive record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrArchiveNotFound
	}
	return nil
}
