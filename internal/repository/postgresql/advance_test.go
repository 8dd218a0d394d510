package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRepository_Upsert_OneEntryPerPeriod(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	ctx := context.Background()
	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewAdvanceRepository(db)

	first, err := repo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID:        member.ID,
		Month:          6,
		Year:           2025,
		OldAdvance:     decimal.NewFromInt(500),
		CurrentAdvance: decimal.NewFromInt(300),
		Deduction:      decimal.NewFromInt(200),
		NewAdvance:     decimal.NewFromInt(600),
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID:        member.ID,
		Month:          6,
		Year:           2025,
		OldAdvance:     decimal.NewFromInt(500),
		CurrentAdvance: decimal.NewFromInt(300),
		Deduction:      decimal.NewFromInt(250),
		NewAdvance:     decimal.NewFromInt(550),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "one row per (staff, month, year)")

	entry, err := repo.GetByPeriod(ctx, member.ID, 6, 2025)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Deduction.Equal(decimal.NewFromInt(250)))
	assert.True(t, entry.NewAdvance.Equal(decimal.NewFromInt(550)))

	entries, err := repo.ListByStaff(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAdvanceRepository_GetLatestByStaff_OrdersByUpdatedAt(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	ctx := context.Background()
	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewAdvanceRepository(db)

	march := advance.AdvanceLedgerEntry{
		StaffID:    member.ID,
		Month:      3,
		Year:       2025,
		NewAdvance: decimal.NewFromInt(700),
	}
	_, err := repo.Upsert(ctx, march)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	_, err = repo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID:    member.ID,
		Month:      6,
		Year:       2025,
		NewAdvance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// A backfill of the March entry makes it the freshest truth even though
	// June is the later period.
	time.Sleep(25 * time.Millisecond)
	march.NewAdvance = decimal.NewFromInt(750)
	_, err = repo.Upsert(ctx, march)
	require.NoError(t, err)

	latest, err := repo.GetLatestByStaff(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 3, latest.Month)
	assert.True(t, latest.NewAdvance.Equal(decimal.NewFromInt(750)))
}

func TestAdvanceRepository_GetLatestByStaff_NoHistoryIsNil(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewAdvanceRepository(db)

	latest, err := repo.GetLatestByStaff(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}
