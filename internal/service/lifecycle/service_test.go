package lifecycle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/domain/lifecycle"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type fakeStaffRepo struct {
	members map[string]staff.StaffMember
	seq     int
}

func newFakeStaffRepo(members ...staff.StaffMember) *fakeStaffRepo {
	r := &fakeStaffRepo{members: make(map[string]staff.StaffMember)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	if m.ID == "" {
		r.seq++
		m.ID = fmt.Sprintf("new-%d", r.seq)
	}
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

type fakeAdvanceRepo struct {
	entries map[string]advance.AdvanceLedgerEntry
	seq     int
}

func newFakeAdvanceRepo() *fakeAdvanceRepo {
	return &fakeAdvanceRepo{entries: make(map[string]advance.AdvanceLedgerEntry)}
}

func periodKey(staffID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", staffID, month, year)
}

func (r *fakeAdvanceRepo) Upsert(_ context.Context, entry advance.AdvanceLedgerEntry) (advance.AdvanceLedgerEntry, error) {
	key := periodKey(entry.StaffID, entry.Month, entry.Year)
	if existing, ok := r.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		r.seq++
		entry.ID = fmt.Sprintf("adv-%d", r.seq)
	}
	entry.UpdatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.entries[key] = entry
	return entry, nil
}

func (r *fakeAdvanceRepo) GetByPeriod(_ context.Context, staffID string, month, year int) (*advance.AdvanceLedgerEntry, error) {
	if e, ok := r.entries[periodKey(staffID, month, year)]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r *fakeAdvanceRepo) GetLatestByStaff(_ context.Context, staffID string) (*advance.AdvanceLedgerEntry, error) {
	var latest *advance.AdvanceLedgerEntry
	for _, e := range r.entries {
		if e.StaffID != staffID {
			continue
		}
		e := e
		if latest == nil || e.UpdatedAt.After(latest.UpdatedAt) {
			latest = &e
		}
	}
	return latest, nil
}

func (r *fakeAdvanceRepo) ListByPeriod(_ context.Context, month, year int) ([]advance.AdvanceLedgerEntry, error) {
	var out []advance.AdvanceLedgerEntry
	for _, e := range r.entries {
		if e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAdvanceRepo) ListByStaff(_ context.Context, staffID string) ([]advance.AdvanceLedgerEntry, error) {
	var out []advance.AdvanceLedgerEntry
	for _, e := range r.entries {
		if e.StaffID == staffID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAdvanceRepo) DeleteByStaff(_ context.Context, staffID string) error {
	for k, e := range r.entries {
		if e.StaffID == staffID {
			delete(r.entries, k)
		}
	}
	return nil
}

type fakeArchiveRepo struct {
	records map[string]lifecycle.ArchivedStaffRecord
	seq     int
}

func newFakeArchiveRepo() *fakeArchiveRepo {
	return &fakeArchiveRepo{records: make(map[string]lifecycle.ArchivedStaffRecord)}
}

func (r *fakeArchiveRepo) Create(_ context.Context, rec lifecycle.ArchivedStaffRecord) (lifecycle.ArchivedStaffRecord, error) {
	r.seq++
	rec.ID = fmt.Sprintf("arc-%d", r.seq)
	rec.CreatedAt = time.Now()
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *fakeArchiveRepo) GetByID(_ context.Context, id string) (lifecycle.ArchivedStaffRecord, error) {
	if rec, ok := r.records[id]; ok {
		return rec, nil
	}
	return lifecycle.ArchivedStaffRecord{}, lifecycle.ErrArchiveNotFound
}

func (r *fakeArchiveRepo) GetByOriginalStaffID(_ context.Context, staffID string) (*lifecycle.ArchivedStaffRecord, error) {
	for _, rec := range r.records {
		if rec.OriginalStaffID == staffID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *fakeArchiveRepo) List(_ context.Context) ([]lifecycle.ArchivedStaffRecord, error) {
	var out []lifecycle.ArchivedStaffRecord
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeArchiveRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

type fakeAttendanceDeleter struct {
	deleted []string
}

func (r *fakeAttendanceDeleter) DeleteByStaff(_ context.Context, staffID string) error {
	r.deleted = append(r.deleted, staffID)
	return nil
}

func adminCtx() context.Context {
	return user.WithIdentity(context.Background(), user.Identity{UserID: "admin", Role: user.RoleAdmin})
}

func activeMember(id string) staff.StaffMember {
	return staff.StaffMember{
		ID:          id,
		Name:        "Asha",
		Location:    staff.LocationMainShop,
		Active:      true,
		BasicSalary: decimal.NewFromInt(6000),
		Incentive:   decimal.NewFromInt(2000),
		HouseRent:   decimal.NewFromInt(1000),
		TotalSalary: decimal.NewFromInt(9000),
	}
}

type fixture struct {
	svc         lifecycle.LifecycleService
	archiveRepo *fakeArchiveRepo
	staffRepo   *fakeStaffRepo
	advanceRepo *fakeAdvanceRepo
	attDeleter  *fakeAttendanceDeleter
}

func newFixture(members ...staff.StaffMember) fixture {
	f := fixture{
		archiveRepo: newFakeArchiveRepo(),
		staffRepo:   newFakeStaffRepo(members...),
		advanceRepo: newFakeAdvanceRepo(),
		attDeleter:  &fakeAttendanceDeleter{},
	}
	f.svc = NewLifecycleService(f.archiveRepo, f.staffRepo, f.advanceRepo, f.attDeleter, nil, clock.Fixed(testNow))
	return f
}

func TestArchive_SnapshotsOutstandingBalance(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := adminCtx()

	_, err := f.advanceRepo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID: "s1", Month: 5, Year: 2025,
		OldAdvance: decimal.NewFromInt(200),
		NewAdvance: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	_, err = f.advanceRepo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID: "s1", Month: 6, Year: 2025,
		OldAdvance:     decimal.NewFromInt(200),
		CurrentAdvance: decimal.NewFromInt(300),
		NewAdvance:     decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	resp, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1", Reason: "moved away"})
	require.NoError(t, err)

	assert.Equal(t, "s1", resp.OriginalStaffID)
	assert.True(t, resp.TotalAdvanceOutstanding.Equal(decimal.NewFromInt(500)),
		"outstanding = %s", resp.TotalAdvanceOutstanding)
	require.NotNil(t, resp.LastAdvanceData)
	assert.Equal(t, 6, resp.LastAdvanceData.Month)

	// Member flagged inactive, history untouched.
	member := f.staffRepo.members["s1"]
	assert.False(t, member.Active)
	assert.Len(t, f.advanceRepo.entries, 2)
}

func TestArchive_AlreadyArchived(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := adminCtx()

	_, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	require.NoError(t, err)

	_, err = f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyArchived)
}

func TestArchive_NoLedgerHistory(t *testing.T) {
	f := newFixture(activeMember("s1"))

	resp, err := f.svc.Archive(adminCtx(), lifecycle.ArchiveRequest{StaffID: "s1"})
	require.NoError(t, err)
	assert.True(t, resp.TotalAdvanceOutstanding.IsZero())
	assert.Nil(t, resp.LastAdvanceData)
}

func TestRejoin_RestoresBalanceUnderNewIdentity(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := adminCtx()

	_, err := f.advanceRepo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID: "s1", Month: 5, Year: 2025,
		CurrentAdvance: decimal.NewFromInt(750),
		NewAdvance:     decimal.NewFromInt(750),
	})
	require.NoError(t, err)

	archived, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	require.NoError(t, err)

	member, err := f.svc.Rejoin(ctx, archived.ID)
	require.NoError(t, err)

	assert.NotEqual(t, "s1", member.ID, "rejoin must mint a fresh identity")
	assert.True(t, member.Active)
	assert.Equal(t, testNow.Format("2006-01-02"), member.JoinDate)
	assert.True(t, member.TotalSalary.Equal(decimal.NewFromInt(9000)))

	// Balance restored for the rejoin month: old == new == B, nothing issued
	// or repaid yet.
	entry, err := f.advanceRepo.GetByPeriod(ctx, member.ID, 6, 2025)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.OldAdvance.Equal(decimal.NewFromInt(750)))
	assert.True(t, entry.NewAdvance.Equal(decimal.NewFromInt(750)))
	assert.True(t, entry.CurrentAdvance.IsZero())
	assert.True(t, entry.Deduction.IsZero())

	// Archive record consumed.
	assert.Empty(t, f.archiveRepo.records)
}

func TestRejoin_NoOutstandingBalance(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := adminCtx()

	archived, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	require.NoError(t, err)

	member, err := f.svc.Rejoin(ctx, archived.ID)
	require.NoError(t, err)

	entry, err := f.advanceRepo.GetByPeriod(ctx, member.ID, 6, 2025)
	require.NoError(t, err)
	assert.Nil(t, entry, "no ledger entry without an outstanding balance")
}

func TestRejoin_UnknownArchive(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Rejoin(adminCtx(), "missing")
	assert.ErrorIs(t, err, lifecycle.ErrArchiveNotFound)
}

func TestPurge_RemovesEverything(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := adminCtx()

	_, err := f.advanceRepo.Upsert(ctx, advance.AdvanceLedgerEntry{
		StaffID: "s1", Month: 5, Year: 2025,
		CurrentAdvance: decimal.NewFromInt(100),
		NewAdvance:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	archived, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Purge(ctx, archived.ID))

	assert.Empty(t, f.archiveRepo.records)
	assert.NotContains(t, f.staffRepo.members, "s1")
	assert.Empty(t, f.advanceRepo.entries)
	assert.Equal(t, []string{"s1"}, f.attDeleter.deleted)
}

func TestPurge_StaffRowAlreadyGone(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := adminCtx()

	archived, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	require.NoError(t, err)

	// Simulate a half-finished earlier purge.
	require.NoError(t, f.staffRepo.HardDelete(ctx, "s1"))

	assert.NoError(t, f.svc.Purge(ctx, archived.ID))
	assert.Empty(t, f.archiveRepo.records)
}

func TestLifecycle_ManagerForbidden(t *testing.T) {
	f := newFixture(activeMember("s1"))
	ctx := user.WithIdentity(context.Background(), user.Identity{UserID: "mgr", Role: user.RoleManager, Location: "Main Shop"})

	_, err := f.svc.Archive(ctx, lifecycle.ArchiveRequest{StaffID: "s1"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = f.svc.Rejoin(ctx, "arc-1")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	err = f.svc.Purge(ctx, "arc-1")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}
