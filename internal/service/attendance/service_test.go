package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// today is the fixed test clock: Monday 2 June 2025.
var today = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type fakeAttendanceRepo struct {
	records map[string]attendance.AttendanceRecord
	seq     int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.AttendanceRecord)}
}

func naturalKey(staffID string, date time.Time, isPartTime bool) string {
	return fmt.Sprintf("%s|%s|%t", staffID, date.Format("2006-01-02"), isPartTime)
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	key := naturalKey(rec.StaffID, rec.Date, rec.IsPartTime)
	if existing, ok := r.records[key]; ok {
		rec.ID = existing.ID
	} else {
		r.seq++
		rec.ID = fmt.Sprintf("att-%d", r.seq)
	}
	r.records[key] = rec
	return rec, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.AttendanceRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) GetByNaturalKey(_ context.Context, staffID string, date time.Time, isPartTime bool) (*attendance.AttendanceRecord, error) {
	if rec, ok := r.records[naturalKey(staffID, date, isPartTime)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) FindPartTime(_ context.Context, staffID string, date time.Time, name string) (*attendance.AttendanceRecord, error) {
	for _, rec := range r.records {
		if !rec.IsPartTime || !rec.Date.Equal(date) {
			continue
		}
		if rec.StaffID == staffID {
			return &rec, nil
		}
		if rec.NameOverride != nil && *rec.NameOverride == name {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	for key, rec := range r.records {
		if rec.ID == id {
			delete(r.records, key)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) DeleteFullTimeByDate(_ context.Context, date time.Time, staffIDs []string) error {
	ids := make(map[string]bool, len(staffIDs))
	for _, id := range staffIDs {
		ids[id] = true
	}
	for key, rec := range r.records {
		if !rec.IsPartTime && rec.Date.Equal(date) && ids[rec.StaffID] {
			delete(r.records, key)
		}
	}
	return nil
}

func (r *fakeAttendanceRepo) DeleteByStaff(_ context.Context, staffID string) error {
	for key, rec := range r.records {
		if rec.StaffID == staffID {
			delete(r.records, key)
		}
	}
	return nil
}

func (r *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByPeriod(_ context.Context, filter attendance.PeriodFilter) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range r.records {
		if int(rec.Date.Month()) != filter.Month || rec.Date.Year() != filter.Year {
			continue
		}
		if filter.StaffID != "" && rec.StaffID != filter.StaffID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeStaffRepo struct {
	members map[string]staff.StaffMember
}

func newFakeStaffRepo(members ...staff.StaffMember) *fakeStaffRepo {
	r := &fakeStaffRepo{members: make(map[string]staff.StaffMember)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	r.members[m.ID] = m
	return m, nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (staff.StaffMember, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	return staff.StaffMember{}, staff.ErrStaffNotFound
}

func (r *fakeStaffRepo) Update(_ context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	r.members[m.ID] = m
	return m, nil
}

func (r *fakeStaffRepo) List(_ context.Context, includeInactive bool) ([]staff.StaffMember, error) {
	var out []staff.StaffMember
	for _, m := range r.members {
		if m.Active || includeInactive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) SetActive(_ context.Context, id string, active bool) error {
	m, ok := r.members[id]
	if !ok {
		return staff.ErrStaffNotFound
	}
	m.Active = active
	r.members[id] = m
	return nil
}

func (r *fakeStaffRepo) UpdateDisplayOrder(_ context.Context, id string, displayOrder int) error {
	m, ok := r.members[id]
	if !ok {
		return staff.ErrStaffNotFound
	}
	m.DisplayOrder = displayOrder
	r.members[id] = m
	return nil
}

func (r *fakeStaffRepo) HardDelete(_ context.Context, id string) error {
	delete(r.members, id)
	return nil
}

func testMember(id, location string) staff.StaffMember {
	return staff.StaffMember{
		ID:          id,
		Name:        "Staff " + id,
		Location:    staff.Location(location),
		Active:      true,
		TotalSalary: decimal.NewFromInt(9000),
	}
}

func adminCtx() context.Context {
	return user.WithIdentity(context.Background(), user.Identity{UserID: "admin", Role: user.RoleAdmin})
}

func managerCtx(location string) context.Context {
	return user.WithIdentity(context.Background(), user.Identity{UserID: "mgr", Role: user.RoleManager, Location: location})
}

func newService(attRepo *fakeAttendanceRepo, staffRepo *fakeStaffRepo) attendance.AttendanceService {
	return NewAttendanceService(attRepo, staffRepo, clock.Fixed(today))
}

func TestRecord_SetsValueAndSunday(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"))
	svc := newService(attRepo, staffRepo)

	rec, err := svc.Record(adminCtx(), attendance.RecordRequest{
		StaffID: "s1",
		Date:    "2025-06-01", // Sunday
		Status:  attendance.StatusHalfDay,
	})
	require.NoError(t, err)
	assert.True(t, rec.Value.Equal(decimal.New(5, -1)), "value = %s", rec.Value)
	assert.True(t, rec.IsSunday)
}

func TestRecord_UpsertReplacesSameKey(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"))
	svc := newService(attRepo, staffRepo)
	ctx := adminCtx()

	first, err := svc.Record(ctx, attendance.RecordRequest{
		StaffID: "s1", Date: "2025-06-02", Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	second, err := svc.Record(ctx, attendance.RecordRequest{
		StaffID: "s1", Date: "2025-06-02", Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same natural key must replace, not duplicate")
	assert.Len(t, attRepo.records, 1)
	assert.Equal(t, attendance.StatusPresent, second.Status)
}

func TestRecord_MalformedDateNeverReachesStore(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"))
	svc := newService(attRepo, staffRepo)

	_, err := svc.Record(adminCtx(), attendance.RecordRequest{
		StaffID: "s1", Date: "02/06/2025", Status: attendance.StatusPresent,
	})
	assert.Error(t, err)
	assert.Empty(t, attRepo.records, "a date that fails to parse must not become a natural key")

	_, err = svc.BulkRecord(adminCtx(), attendance.BulkRecordRequest{
		Date: "02/06/2025", Status: attendance.StatusPresent, StaffIDs: []string{"s1"},
	})
	assert.Error(t, err)
	assert.Empty(t, attRepo.records)
}

func TestRecord_ManagerPastDateRejectedBeforeWrite(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"))
	svc := newService(attRepo, staffRepo)

	_, err := svc.Record(managerCtx("Main Shop"), attendance.RecordRequest{
		StaffID: "s1", Date: "2025-06-01", Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrDateNotToday)
	assert.Empty(t, attRepo.records, "nothing may be persisted")
}

func TestRecord_ManagerTodayAllowed(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"))
	svc := newService(attRepo, staffRepo)

	_, err := svc.Record(managerCtx("Main Shop"), attendance.RecordRequest{
		StaffID: "s1", Date: "2025-06-02", Status: attendance.StatusPresent,
	})
	assert.NoError(t, err)
	assert.Len(t, attRepo.records, 1)
}

func TestRecord_ManagerOtherLocationForbidden(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Godown"))
	svc := newService(attRepo, staffRepo)

	_, err := svc.Record(managerCtx("Main Shop"), attendance.RecordRequest{
		StaffID: "s1", Date: "2025-06-02", Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, user.ErrOutsideLocationScope)
}

func TestRecord_AdminAnyDate(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"))
	svc := newService(attRepo, staffRepo)

	_, err := svc.Record(adminCtx(), attendance.RecordRequest{
		StaffID: "s1", Date: "2025-01-15", Status: attendance.StatusPresent,
	})
	assert.NoError(t, err)
}

func TestRecord_TombstoneDeletesPartTimeEntry(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo()
	svc := newService(attRepo, staffRepo)
	ctx := adminCtx()

	name := "Ravi"
	salary := decimal.NewFromInt(400)
	_, err := svc.Record(ctx, attendance.RecordRequest{
		StaffID:    "pt-1",
		Date:       "2025-06-02",
		Status:     attendance.StatusPresent,
		IsPartTime: true,
		Overrides:  &attendance.Overrides{Name: &name, Salary: &salary},
	})
	require.NoError(t, err)
	require.Len(t, attRepo.records, 1)

	zero := decimal.Zero
	resp, err := svc.Record(ctx, attendance.RecordRequest{
		StaffID:    "pt-1",
		Date:       "2025-06-02",
		Status:     attendance.StatusAbsent,
		IsPartTime: true,
		Overrides:  &attendance.Overrides{Name: &name, Salary: &zero},
	})
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Empty(t, attRepo.records, "tombstone must remove the entry, not store a zero")
}

func TestRecord_TombstoneWithoutEntrySucceeds(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo()
	svc := newService(attRepo, staffRepo)

	zero := decimal.Zero
	name := "Ravi"
	resp, err := svc.Record(adminCtx(), attendance.RecordRequest{
		StaffID:    "pt-9",
		Date:       "2025-06-02",
		Status:     attendance.StatusAbsent,
		IsPartTime: true,
		Overrides:  &attendance.Overrides{Name: &name, Salary: &zero},
	})
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
}

func TestBulkRecord_ReplacesExistingDay(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"), testMember("s2", "Main Shop"))
	svc := newService(attRepo, staffRepo)
	ctx := adminCtx()

	_, err := svc.Record(ctx, attendance.RecordRequest{
		StaffID: "s1", Date: "2025-06-02", Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	responses, err := svc.BulkRecord(ctx, attendance.BulkRecordRequest{
		Date:     "2025-06-02",
		Status:   attendance.StatusPresent,
		StaffIDs: []string{"s1", "s2"},
	})
	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Len(t, attRepo.records, 2)
	for _, resp := range responses {
		assert.Equal(t, attendance.StatusPresent, resp.Status)
	}
}

func TestBulkRecord_ManagerScopedToOwnLocation(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"), testMember("s2", "Godown"))
	svc := newService(attRepo, staffRepo)

	_, err := svc.BulkRecord(managerCtx("Main Shop"), attendance.BulkRecordRequest{
		Date:     "2025-06-02",
		Status:   attendance.StatusPresent,
		StaffIDs: []string{"s1", "s2"},
	})
	assert.ErrorIs(t, err, user.ErrOutsideLocationScope)
	assert.Empty(t, attRepo.records)
}

func TestListByDate_ManagerSeesOwnLocationOnly(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	staffRepo := newFakeStaffRepo(testMember("s1", "Main Shop"), testMember("s2", "Godown"))
	svc := newService(attRepo, staffRepo)
	ctx := adminCtx()

	for _, id := range []string{"s1", "s2"} {
		_, err := svc.Record(ctx, attendance.RecordRequest{
			StaffID: id, Date: "2025-06-02", Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListByDate(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListByDate(managerCtx("Main Shop"), "2025-06-02")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "s1", scoped[0].StaffID)
}
