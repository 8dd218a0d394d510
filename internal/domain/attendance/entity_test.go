package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusValue(t *testing.T) {
	assert.True(t, StatusPresent.Value().Equal(decimal.NewFromInt(1)))
	assert.True(t, StatusHalfDay.Value().Equal(decimal.New(5, -1)))
	assert.True(t, StatusAbsent.Value().IsZero())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPresent.Valid())
	assert.True(t, StatusHalfDay.Valid())
	assert.True(t, StatusAbsent.Valid())
	assert.False(t, Status("late").Valid())
	assert.False(t, Status("").Valid())
}

func TestIsTombstone(t *testing.T) {
	zero := decimal.Zero
	nonZero := decimal.NewFromInt(100)

	tombstone := RecordRequest{
		StaffID:    "pt-1",
		Date:       "2025-06-02",
		Status:     StatusAbsent,
		IsPartTime: true,
		Overrides:  &Overrides{Salary: &zero},
	}
	assert.True(t, tombstone.IsTombstone())

	// Absent part-timer with a real salary override is a stored observation.
	paid := tombstone
	paid.Overrides = &Overrides{Salary: &nonZero}
	assert.False(t, paid.IsTombstone())

	// Zero salary but not absent.
	present := tombstone
	present.Status = StatusPresent
	assert.False(t, present.IsTombstone())

	// Full-time records never tombstone.
	fullTime := tombstone
	fullTime.IsPartTime = false
	assert.False(t, fullTime.IsTombstone())

	// No override at all.
	bare := tombstone
	bare.Overrides = nil
	assert.False(t, bare.IsTombstone())
}
