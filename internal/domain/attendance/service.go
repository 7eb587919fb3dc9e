package attendance

import (
	"context"
)

// AttendanceService defines business logic for the daily clock cycle
type AttendanceService interface {
	// ClockIn opens today's session for the authenticated employee
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// StartBreak appends an open break to today's session
	StartBreak(ctx context.Context, req StartBreakRequest) (AttendanceResponse, error)

	// EndBreak closes the currently open break
	EndBreak(ctx context.Context) (AttendanceResponse, error)

	// ClockOut closes today's session and computes the derived totals
	ClockOut(ctx context.Context) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance corrects a record or applies an absent/half_day
	// override (admin/manager)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ClearAttendance bulk-deletes records in a date range (admin)
	ClearAttendance(ctx context.Context, req ClearRequest) (int64, error)
}
