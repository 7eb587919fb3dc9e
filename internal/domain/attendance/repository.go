package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// CreateIfAbsent inserts a record for (employee, date) only when none
	// exists yet. The conditional write closes the concurrent clock-in race:
	// a losing writer gets ErrAlreadyClockedIn instead of a duplicate row.
	CreateIfAbsent(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for an employee on a calendar day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update persists a mutated record (breaks, clock-out, admin corrections)
	Update(ctx context.Context, att Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// DeleteByDateRange hard-deletes records inside [from, to], the only
	// sanctioned bulk removal path
	DeleteByDateRange(ctx context.Context, from, to time.Time) (int64, error)
}
