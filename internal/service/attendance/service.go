package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamstack/ems-backend-go/internal/domain/attendance"
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository

	// now and loc are injectable for deterministic lifecycle tests
	now func() time.Time
	loc *time.Location
}

func NewAttendanceService(repo attendance.AttendanceRepository, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		now:                  time.Now,
		loc:                  loc,
	}
}

// employeeIDFromContext extracts the authenticated user from JWT claims
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// workday truncates a local instant down to its calendar day key.
func workday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// localize rebases persisted stamps into the service zone so lateness and
// break math always run against local wall-clock time.
func (a *AttendanceServiceImpl) localize(att attendance.Attendance) attendance.Attendance {
	if att.ClockIn != nil {
		in := att.ClockIn.In(a.loc)
		att.ClockIn = &in
	}
	if att.ClockOut != nil {
		out := att.ClockOut.In(a.loc)
		att.ClockOut = &out
	}
	return att
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)

	record := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       workday(nowLocal),
		ClockIn:    &nowLocal,
		Breaks:     []attendance.Break{},
		Location: attendance.Location{
			Type:      attendance.LocationType(req.LocationType),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Address:   req.Address,
		},
	}
	record = attendance.Recompute(record)

	created, err := a.AttendanceRepository.CreateIfAbsent(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			// Distinguish an open session from a finished day
			existing, getErr := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, record.Date)
			if getErr == nil && existing.ClockOut != nil {
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
			}
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// openSession loads today's record and rebases its stamps to local time.
func (a *AttendanceServiceImpl) openSession(ctx context.Context, employeeID string, nowLocal time.Time) (attendance.Attendance, error) {
	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, workday(nowLocal))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return a.localize(att), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	att, err := a.openSession(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch {
	case att.ClockIn == nil:
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	case att.ClockOut != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	case att.OpenBreak() != nil:
		return attendance.AttendanceResponse{}, attendance.ErrBreakAlreadyOpen
	}

	att.Breaks = append(att.Breaks, attendance.Break{
		StartTime: nowLocal,
		Reason:    req.Reason,
	})
	att = attendance.Recompute(att)

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to start break: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	att, err := a.openSession(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	open := att.OpenBreak()
	if open == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenBreak
	}
	open.EndTime = &nowLocal
	att = attendance.Recompute(att)

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to end break: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	att, err := a.openSession(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch {
	case att.ClockIn == nil:
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	case att.ClockOut != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	// A break left open at clock-out is closed at the clock-out instant so
	// the totals stay consistent.
	if open := att.OpenBreak(); open != nil {
		open.EndTime = &nowLocal
	}

	att.ClockOut = &nowLocal
	att = attendance.Recompute(att)

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to clock out: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	normalizePaging(&filter.Page, &filter.Limit)
	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	normalizePaging(&filter.Page, &filter.Limit)
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// UpdateAttendance implements attendance.AttendanceService.
// The admin correction surface: wrong stamps and absent/half_day overrides.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	att = a.localize(att)

	if req.ClockInTime != nil {
		if t, err := time.Parse(time.RFC3339, *req.ClockInTime); err == nil {
			in := t.In(a.loc)
			att.ClockIn = &in
		}
	}
	if req.ClockOutTime != nil {
		if t, err := time.Parse(time.RFC3339, *req.ClockOutTime); err == nil {
			out := t.In(a.loc)
			att.ClockOut = &out
		}
	}
	if req.Status != nil {
		att.Status = attendance.Status(*req.Status)
	}

	// Ordering is checked on the effective stamps, since a correction may
	// touch only one of them while the other comes from the stored record.
	if att.ClockIn != nil && att.ClockOut != nil && att.ClockOut.Before(*att.ClockIn) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "clock_out_time",
			Message: "clock_out_time must not be before clock_in_time",
		}}
	}

	att = attendance.Recompute(att)

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// ClearAttendance implements attendance.AttendanceService.
// The only sanctioned bulk removal path, replacing ad hoc cleanup scripts.
func (a *AttendanceServiceImpl) ClearAttendance(ctx context.Context, req attendance.ClearRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	from, _ := time.Parse("2006-01-02", req.DateFrom)
	to, _ := time.Parse("2006-01-02", req.DateTo)

	deleted, err := a.AttendanceRepository.DeleteByDateRange(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance records: %w", err)
	}
	return deleted, nil
}

func normalizePaging(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 || *limit > 100 {
		*limit = 20
	}
}

func buildListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		Attendances: responses,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	breaks := make([]attendance.BreakResponse, 0, len(att.Breaks))
	for _, b := range att.Breaks {
		breaks = append(breaks, attendance.BreakResponse{
			StartTime: b.StartTime.Format("2006-01-02 15:04:05"),
			EndTime:   timePtrToString(b.EndTime),
			Reason:    b.Reason,
		})
	}

	return attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		EmployeeName:     att.EmployeeName,
		Date:             att.Date.Format("2006-01-02"),
		ClockInTime:      timePtrToString(att.ClockIn),
		ClockOutTime:     timePtrToString(att.ClockOut),
		Breaks:           breaks,
		TotalWorkedHours: att.TotalWorkedHours,
		TotalBreakHours:  att.TotalBreakHours,
		Status:           string(att.Status),
		IsLate:           att.IsLate,
		LateByMinutes:    att.LateByMinutes,
		Location:         att.Location,
		CreatedAt:        att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
