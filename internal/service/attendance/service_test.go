package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamstack/ems-backend-go/internal/domain/attendance"
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

// fakeAttendanceRepo is an in-memory repository keyed by (employee, date).
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) CreateIfAbsent(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := recordKey(att.EmployeeID, att.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	att.ID = uuid.New().String()
	f.records[key] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.ID == id {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	att, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	key := recordKey(att.EmployeeID, att.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[key] = att
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	out := make([]attendance.Attendance, 0, len(f.records))
	for _, att := range f.records {
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(_ context.Context, employeeID string, _ attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	out := make([]attendance.Attendance, 0)
	for _, att := range f.records {
		if att.EmployeeID == employeeID {
			out = append(out, att)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) DeleteByDateRange(_ context.Context, from, to time.Time) (int64, error) {
	var deleted int64
	for key, att := range f.records {
		if !att.Date.Before(from) && !att.Date.After(to) {
			delete(f.records, key)
			deleted++
		}
	}
	return deleted, nil
}

func authedContext(t *testing.T, userID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// newTestService pins the clock so lifecycle assertions are deterministic.
func newTestService(repo attendance.AttendanceRepository, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		now:                  func() time.Time { return now },
		loc:                  time.UTC,
	}
}

func clockInAt(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestClockIn_OnTime(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 30))
	ctx := authedContext(t, "emp-1")

	resp, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})

	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	assert.False(t, resp.IsLate)
	assert.Equal(t, 0, resp.LateByMinutes)
	require.NotNil(t, resp.ClockInTime)
}

func TestClockIn_Late(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(9, 15))
	ctx := authedContext(t, "emp-1")

	resp, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "remote"})

	require.NoError(t, err)
	assert.Equal(t, "late", resp.Status)
	assert.True(t, resp.IsLate)
	assert.Equal(t, 15, resp.LateByMinutes)
}

func TestClockIn_InvalidLocationType(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "moon"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestClockIn_DuplicateSameDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_AfterClockOutSameDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(17, 0) }
	_, err = svc.ClockOut(ctx)
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestStartBreak_WithoutClockIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(10, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.StartBreak(ctx, attendance.StartBreakRequest{})

	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestStartBreak_SecondOpenBreakRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(12, 0) }
	resp, err := svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)
	assert.Equal(t, "on_break", resp.Status)

	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{})
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
}

func TestEndBreak_WithoutOpenBreak(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	_, err = svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)
}

func TestBreakCycle_ReturnsToPresent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(12, 0) }
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(12, 30) }
	resp, err := svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
}

func TestClockOut_ComputesTotals(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(9, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(12, 0) }
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(13, 0) }
	_, err = svc.EndBreak(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(17, 0) }
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, "clocked_out", resp.Status)
	require.NotNil(t, resp.TotalWorkedHours)
	require.NotNil(t, resp.TotalBreakHours)
	assert.InDelta(t, 7.0, *resp.TotalWorkedHours, 0.0001)
	assert.InDelta(t, 1.0, *resp.TotalBreakHours, 0.0001)
}

func TestClockOut_ClosesOpenBreak(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(16, 0) }
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(17, 0) }
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	require.Len(t, resp.Breaks, 1)
	require.NotNil(t, resp.Breaks[0].EndTime)
	require.NotNil(t, resp.TotalBreakHours)
	assert.InDelta(t, 1.0, *resp.TotalBreakHours, 0.0001)
	require.NotNil(t, resp.TotalWorkedHours)
	assert.InDelta(t, 8.0, *resp.TotalWorkedHours, 0.0001)
}

func TestClockOut_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	svc.now = func() time.Time { return clockInAt(17, 0) }
	_, err = svc.ClockOut(ctx)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockOut_WithoutClockIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(17, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockOut(ctx)

	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestUpdateAttendance_StatusOverride(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(9, 30))
	ctx := authedContext(t, "emp-1")

	created, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	override := "half_day"
	resp, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:     created.ID,
		Status: &override,
	})

	require.NoError(t, err)
	assert.Equal(t, "half_day", resp.Status)
}

func TestUpdateAttendance_RejectsNonOverrideStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(9, 0))
	ctx := authedContext(t, "emp-1")

	bogus := "clocked_out"
	_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:     "some-id",
		Status: &bogus,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestUpdateAttendance_RejectsClockOutBeforeClockIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(9, 0))
	ctx := authedContext(t, "emp-1")

	created, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	// 07:00 is two hours before the recorded clock-in
	earlier := "2025-03-10T07:00:00Z"
	_, err = svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:           created.ID,
		ClockOutTime: &earlier,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "clock_out_time", verrs[0].Field)

	// the stored record keeps its original open session
	stored, err := svc.GetAttendance(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClockOutTime)
}

func TestUpdateAttendance_CorrectedStampsStayOrdered(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(9, 0))
	ctx := authedContext(t, "emp-1")

	created, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	in := "2025-03-10T08:00:00Z"
	out := "2025-03-10T16:00:00Z"
	resp, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:           created.ID,
		ClockInTime:  &in,
		ClockOutTime: &out,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ClockOutTime)
	require.NotNil(t, resp.TotalWorkedHours)
	assert.InDelta(t, 8.0, *resp.TotalWorkedHours, 0.001)
}

func TestClearAttendance(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{LocationType: "office"})
	require.NoError(t, err)

	deleted, err := svc.ClearAttendance(ctx, attendance.ClearRequest{
		DateFrom: "2025-03-01",
		DateTo:   "2025-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestClearAttendance_InvalidRange(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, clockInAt(8, 0))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClearAttendance(ctx, attendance.ClearRequest{
		DateFrom: "2025-03-31",
		DateTo:   "2025-03-01",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
