package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Upsert_ReplacesOnNaturalKey(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	ctx := context.Background()
	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewAttendanceRepository(db)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		StaffID: member.ID,
		Date:    date,
		Status:  attendance.StatusAbsent,
		Value:   attendance.StatusAbsent.Value(),
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		StaffID: member.ID,
		Date:    date,
		Status:  attendance.StatusPresent,
		Value:   attendance.StatusPresent.Value(),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (staff, date, kind) must replace the row, not duplicate it")

	records, err := repo.ListByPeriod(ctx, attendance.PeriodFilter{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
	assert.True(t, records[0].Value.Equal(attendance.StatusPresent.Value()))
}

func TestAttendanceRepository_Upsert_PartTimeIsDistinctKey(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	ctx := context.Background()
	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewAttendanceRepository(db)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	fullTime, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		StaffID: member.ID,
		Date:    date,
		Status:  attendance.StatusPresent,
		Value:   attendance.StatusPresent.Value(),
	})
	require.NoError(t, err)

	name := "Asha (evening)"
	partTime, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		StaffID:      member.ID,
		Date:         date,
		IsPartTime:   true,
		Status:       attendance.StatusPresent,
		Value:        attendance.StatusPresent.Value(),
		NameOverride: &name,
	})
	require.NoError(t, err)

	assert.NotEqual(t, fullTime.ID, partTime.ID, "the employment kind is part of the natural key")

	records, err := repo.ListByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAttendanceRepository_GetByNaturalKey_AbsentIsNil(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	repo := postgresql.NewAttendanceRepository(db)
	rec, err := repo.GetByNaturalKey(context.Background(), uuid.NewString(),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), false)

	require.NoError(t, err)
	assert.Nil(t, rec)
}
