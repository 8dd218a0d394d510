package postgresql_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRepository_Update_PreservesInitialSalary(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	ctx := context.Background()
	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewStaffRepository(db)

	member.BasicSalary = decimal.NewFromInt(7000)
	member.TotalSalary = decimal.NewFromInt(10000)
	// A caller-supplied initial salary must be ignored by the update.
	member.InitialSalary = decimal.NewFromInt(1)
	_, err := repo.Update(ctx, member)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalSalary.Equal(decimal.NewFromInt(10000)), "total = %s", got.TotalSalary)
	assert.True(t, got.InitialSalary.Equal(decimal.NewFromInt(9000)), "initial = %s", got.InitialSalary)
}

func TestStaffRepository_SetActive_Deactivates(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	ctx := context.Background()
	member := createTestStaff(t, db, "Asha")
	repo := postgresql.NewStaffRepository(db)

	require.NoError(t, repo.SetActive(ctx, member.ID, false))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStaffRepository_HardDelete_AbsentRowSucceeds(t *testing.T) {
	db := testDB(t)
	resetTables(t, db)

	repo := postgresql.NewStaffRepository(db)
	assert.NoError(t, repo.HardDelete(context.Background(), uuid.NewString()))
}
