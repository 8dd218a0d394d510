package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
	"github.com/staffbook/staffbook-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	dbOnce sync.Once
	db     *database.DB
	dbErr  error
)

// testDB connects to the database named by TEST_DATABASE_URL. Tests that
// need one are skipped when the variable is unset.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database-backed tests")
	}

	dbOnce.Do(func() {
		db, dbErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, dbErr, "failed to connect to test database")
	return db
}

// resetTables clears every table the repositories touch so each test starts
// from an empty database.
func resetTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"attendance_records",
		"advance_ledger_entries",
		"salary_hikes",
		"archived_staff",
		"sessions",
		"staff_members",
		"users",
	}
	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate %s", table)
	}
}

func createTestStaff(t *testing.T, db *database.DB, name string) staff.StaffMember {
	t.Helper()

	repo := postgresql.NewStaffRepository(db)
	member, err := repo.Create(context.Background(), staff.StaffMember{
		Name:                  name,
		Location:              staff.LocationMainShop,
		Active:                true,
		BasicSalary:           decimal.NewFromInt(6000),
		Incentive:             decimal.NewFromInt(2000),
		HouseRent:             decimal.NewFromInt(1000),
		TotalSalary:           decimal.NewFromInt(9000),
		InitialSalary:         decimal.NewFromInt(9000),
		JoinDate:              time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SalaryCalculationDays: 30,
	})
	require.NoError(t, err)
	return member
}
